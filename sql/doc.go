// Package sql turns associative column/value data and loosely-specified
// WHERE clauses into parameterized SQL statements.
//
// The package includes a binding supply that resolves value tokens into
// markers, a WHERE parser that splits specifications into individually
// bound conditions, builders for INSERT and UPDATE statements, and a
// keyword classifier that assigns a command class to raw SQL text.
//
// # Builder Usage
//
//	supply := sql.NewSupply(nil, nil)
//	stmt, err := sql.BuildInsert("fruits", []core.ColumnValue{
//	    {Column: "name", Value: "mango"},
//	    {Column: "qty", Value: 7},
//	}, supply)
//	// stmt.SQL      == "INSERT INTO fruits (name, qty) VALUES (?, ?)"
//	// stmt.Bindings == {?=mango, ?=7}
//
// # WHERE Specifications
//
// A WHERE specification is either a raw string, split on whole-word WHERE
// and AND, or an explicit list of condition fragments:
//
//	sql.Where("WHERE name = ? AND qty > 3")
//	sql.WhereAll("name = ?", "qty > 3")
//
// Each condition decomposes into column, operator and value; the value is
// bound through the shared supply under a where_-prefixed marker so column
// assignments and same-named conditions never collide.
//
// # Command Classification
//
// Classify assigns one of Read, Delete, Insert, Update, DDL or Unsupported
// by case-insensitive keyword scan with fixed precedence, ignoring
// keywords inside quoted literals.
package sql
