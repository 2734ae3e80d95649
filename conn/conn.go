package conn

import (
	stdsql "database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/mallard-db/mallard/core"
	"github.com/mallard-db/mallard/db"
	"github.com/mallard-db/mallard/sql"
)

// Conn is a DuckDB connection implementing the engine's Executor and
// Catalog capabilities over database/sql. Named markers are rewritten to
// the driver's positional placeholders on the way in.
type Conn struct {
	handle *stdsql.DB
}

// Open opens a DuckDB database file, creating it when missing.
func Open(path string) (*Conn, error) {
	handle, err := stdsql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	return &Conn{handle: handle}, nil
}

// OpenMemory opens an in-memory DuckDB database.
func OpenMemory() (*Conn, error) {
	return Open("")
}

// Query prepares, binds and executes one fetch, materializing the full
// row set in driver order.
func (c *Conn) Query(sqlText string, bindings *core.Bindings) (db.Rowset, error) {
	expanded, args, err := sql.ExpandMarkers(sqlText, bindings)
	if err != nil {
		return db.Rowset{}, err
	}

	stmt, err := c.handle.Prepare(expanded)
	if err != nil {
		return db.Rowset{}, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return db.Rowset{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return scanRowset(rows)
}

// Exec prepares, binds and executes one statement, returning the
// affected-row count reported by the driver.
func (c *Conn) Exec(sqlText string, bindings *core.Bindings) (int64, error) {
	expanded, args, err := sql.ExpandMarkers(sqlText, bindings)
	if err != nil {
		return 0, err
	}

	stmt, err := c.handle.Prepare(expanded)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(args...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

// Close closes the underlying database handle.
func (c *Conn) Close() error {
	return c.handle.Close()
}

func scanRowset(rows *stdsql.Rows) (db.Rowset, error) {
	columns, err := rows.Columns()
	if err != nil {
		return db.Rowset{}, fmt.Errorf("columns: %w", err)
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return db.Rowset{}, fmt.Errorf("scan: %w", err)
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return db.Rowset{}, fmt.Errorf("rows: %w", err)
	}

	return db.Rowset{Columns: columns, Rows: data}, nil
}
