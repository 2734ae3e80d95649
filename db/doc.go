// Package db provides the statement execution engine for Mallard.
//
// The Engine type is the main entry point. Every statement, whether
// built by the sql package or supplied raw, goes through Engine.Run:
// classify, guard, execute once, shape the result.
//
// # Engine Usage
//
//	engine := db.NewEngine(executor, catalog)
//	result, err := engine.Run("SELECT * FROM fruits", core.Bindings{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result.Display()
//
// # Result Types
//
// The result shape follows the statement's command class:
//   - QueryResult: SELECT and DESCRIBE, ordered columns plus associative rows
//   - ExecResult: INSERT, UPDATE, DELETE, the affected-row count
//   - SchemaResult: CREATE and ALTER, a success flag
//
// The facade operations (Select, Insert, Update, Delete and friends)
// wrap Run with catalog filtering and statement building.
package db
