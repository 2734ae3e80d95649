package db

import (
	"fmt"

	"github.com/mallard-db/mallard/core"
)

// Catalog answers schema questions about tables. Columns returns the
// column names in table order; Generated reports which of them the
// database fills itself (defaults drawn from sequences, identity
// columns), so the builder can skip them.
type Catalog interface {
	Columns(table string) ([]string, error)
	Generated(table string) (map[string]bool, error)
}

// filterColumns narrows a caller's row to the table's writable columns,
// in table order. Keys that match no column and columns the database
// generates are dropped.
func filterColumns(catalog Catalog, table string, values core.Row) ([]core.ColumnValue, error) {
	columns, err := catalog.Columns(table)
	if err != nil {
		return nil, fmt.Errorf("catalog columns for %s: %w", table, err)
	}
	generated, err := catalog.Generated(table)
	if err != nil {
		return nil, fmt.Errorf("catalog generated for %s: %w", table, err)
	}

	var filtered []core.ColumnValue
	for _, column := range columns {
		if generated[column] {
			continue
		}
		value, ok := values[column]
		if !ok {
			continue
		}
		filtered = append(filtered, core.ColumnValue{Column: column, Value: value})
	}
	return filtered, nil
}
