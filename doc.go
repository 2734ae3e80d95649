// Package mallard is a convenience layer over DuckDB.
//
// Mallard turns associative column/value data and loosely specified
// WHERE clauses into parameterized SQL, and funnels every statement
// through one dispatcher that classifies it, guards it and shapes its
// result.
//
// # Quick Start
//
// Open an in-memory database and work with associative rows:
//
//	instance, _ := mallard.OpenMemory()
//	defer instance.Close()
//	engine := instance.Engine()
//
//	engine.Run("CREATE TABLE fruits (name VARCHAR, qty INTEGER)", core.Bindings{})
//	engine.Insert("fruits", core.Row{"name": "mango", "qty": 3})
//	engine.Update("fruits", core.Row{"qty": 5}, "name = 'mango'")
//
//	rows, _ := engine.Select("SELECT * FROM fruits WHERE qty > ?", 1)
//
// # Binding styles
//
// Statements may mix positional markers (?) and named markers (:name)
// freely; positional values are consumed left to right, columns before
// WHERE conditions, and literals get markers synthesized for them. A
// DELETE without a WHERE clause is rejected before it reaches the
// database.
package mallard
