// Package core provides core types used throughout Mallard.
//
// The package defines the fundamental value types shared by the statement
// builder and the execution engine: Identity, Row, ColumnValue, Args, and
// the ordered Bindings map.
//
// # Identity
//
// Identity identifies the author of statements (journal commit author,
// server connection identity):
//
//	identity := core.Identity{
//	    Name:  "John Doe",
//	    Email: "john@example.com",
//	}
//
// # Bindings
//
// Bindings is the ordered marker-to-value map built while one statement is
// constructed. Markers are either positional ("?") or named (":name"); a
// statement never mixes two named markers with the same name. Bindings are
// created fresh per statement and discarded after execution:
//
//	var b core.Bindings
//	b.Add("?", 1)
//	b.Add(":name", "mango")
package core
