// Package conn connects the engine to DuckDB through database/sql.
//
// Conn implements both executor capabilities the engine needs: statement
// execution (prepare once, bind once, execute once) and the schema
// catalog backed by information_schema.
package conn
