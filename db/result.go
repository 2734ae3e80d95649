package db

import (
	"fmt"
	"os"

	"github.com/mallard-db/mallard/core"
)

type ResultType int

const (
	QueryResultType ResultType = iota
	ExecResultType
	SchemaResultType
)

// Result is the outcome of one dispatched statement. The concrete shape
// follows the statement's command class: reads yield a QueryResult, data
// changes an ExecResult, schema changes a SchemaResult.
type Result interface {
	Type() ResultType
	Display()
}

// QueryResult holds a fetched row set: column names in select order and
// one associative row per record, driver order preserved.
type QueryResult struct {
	Columns    []string
	Rows       []core.Row
	ElapsedSec float64
}

// ExecResult holds the affected-row count of an INSERT, UPDATE or DELETE.
type ExecResult struct {
	RowsAffected int64
	ElapsedSec   float64
}

// SchemaResult holds the outcome of a CREATE or ALTER statement.
type SchemaResult struct {
	OK         bool
	ElapsedSec float64
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result ExecResult) Type() ResultType {
	return ExecResultType
}

func (result SchemaResult) Type() ResultType {
	return SchemaResultType
}

// Column returns one column's values in row order, the single-column
// fetch shape. Unknown columns yield all nils.
func (result QueryResult) Column(name string) []any {
	values := make([]any, len(result.Rows))
	for i, row := range result.Rows {
		values[i] = row[name]
	}
	return values
}

// Cell returns the first column of the first row, or ErrNoRows.
func (result QueryResult) Cell() (any, error) {
	if len(result.Rows) == 0 || len(result.Columns) == 0 {
		return nil, ErrNoRows
	}
	return result.Rows[0][result.Columns[0]], nil
}

// formatDuration renders an elapsed time in compact human form.
func formatDuration(secs float64) string {
	switch {
	case secs < 0.001:
		return "<1ms"
	case secs < 1:
		return fmt.Sprintf("%dms", int(secs*1000))
	case secs < 60:
		return fmt.Sprintf("%.1fs", secs)
	default:
		return fmt.Sprintf("%dm%ds", int(secs)/60, int(secs)%60)
	}
}

func (result QueryResult) Display() {
	if len(result.Rows) > 0 {
		table := NewTable(os.Stdout)
		table.Header(result.Columns)
		for _, row := range result.Rows {
			cells := make([]any, len(result.Columns))
			for i, column := range result.Columns {
				cells[i] = row[column]
			}
			table.Row(cells)
		}
		table.Render()
	}
	fmt.Printf("%d rows (%s)\n", len(result.Rows), formatDuration(result.ElapsedSec))
}

func (result ExecResult) Display() {
	fmt.Printf("%d row(s) affected (%s)\n", result.RowsAffected, formatDuration(result.ElapsedSec))
}

func (result SchemaResult) Display() {
	if result.OK {
		fmt.Printf("OK (%s)\n", formatDuration(result.ElapsedSec))
	} else {
		fmt.Printf("FAILED (%s)\n", formatDuration(result.ElapsedSec))
	}
}
