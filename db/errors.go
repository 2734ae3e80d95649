package db

import "errors"

// ErrNoRows is returned by single-value fetches when the query matched
// nothing.
var ErrNoRows = errors.New("no rows in result")
