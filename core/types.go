package core

// Identity identifies the author of a statement, used for journal
// commit signatures and server connection identities.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Row is a single result row keyed by column name.
type Row map[string]any

// ColumnValue is one column/value pair from caller input. The value may be
// a literal to bind automatically, or a marker token the caller has already
// parameterized (`?` or `:name`).
type ColumnValue struct {
	Column string
	Value  any
}

// Args supplies named bindings to a facade operation, keyed by marker
// (including the leading colon, e.g. ":name").
type Args map[string]any
