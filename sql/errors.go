package sql

import "errors"

var (
	// ErrUnresolvedBinding indicates a marker with no corresponding value,
	// or an exhausted positional supply.
	ErrUnresolvedBinding = errors.New("binding has no corresponding value")

	// ErrMalformedCondition indicates a WHERE fragment that cannot be
	// decomposed into column, operator and value.
	ErrMalformedCondition = errors.New("condition cannot be decomposed")

	// ErrMissingWhere indicates a DELETE statement without a WHERE clause.
	ErrMissingWhere = errors.New("delete statement requires a where clause")

	// ErrUnsupportedCommand indicates SQL text that matches none of the
	// recognized command keywords.
	ErrUnsupportedCommand = errors.New("unsupported sql command")

	// ErrNoColumns indicates an insert or update with no usable columns
	// left after catalog filtering.
	ErrNoColumns = errors.New("no usable columns")
)
