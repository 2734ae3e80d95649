package sql

import (
	"fmt"
	"strings"

	"github.com/mallard-db/mallard/core"
)

// Statement is a built SQL statement: final text plus the bindings it
// needs, immutable once returned.
type Statement struct {
	SQL      string
	Bindings core.Bindings
}

// BuildInsert composes an INSERT statement from a table name and a
// filtered column/value list. Column order follows the list.
//
// Without caller bindings, one positional marker is synthesized per column
// and bound to that column's literal value, in order. With caller
// bindings, every value is treated as a marker token the caller already
// placed, emitted verbatim, and the caller's bindings pass through
// unchanged.
func BuildInsert(table string, values []core.ColumnValue, supply *Supply) (Statement, error) {
	if len(values) == 0 {
		return Statement{}, fmt.Errorf("%w: insert into %s", ErrNoColumns, table)
	}

	columns := make([]string, len(values))
	markers := make([]string, len(values))
	var bindings core.Bindings

	if supply.Empty() {
		for i, cv := range values {
			columns[i] = cv.Column
			markers[i] = core.PositionalMarker
			bindings.Add(core.PositionalMarker, cv.Value)
		}
	} else {
		for i, cv := range values {
			columns[i] = cv.Column
			markers[i] = fmt.Sprint(cv.Value)
		}
		bindings = supply.Passthrough()
	}

	sqlText := "INSERT INTO " + table +
		" (" + strings.Join(columns, ", ") + ")" +
		" VALUES (" + strings.Join(markers, ", ") + ")"

	return Statement{SQL: sqlText, Bindings: bindings}, nil
}

// BuildUpdate composes an UPDATE statement. Each value resolves through
// the binding supply (synthesized markers are named after the column); the
// WHERE specification then parses against the same supply, so positional
// consumption continues where the SET phase stopped. An empty WHERE omits
// the clause.
func BuildUpdate(table string, values []core.ColumnValue, where WhereSpec, supply *Supply) (Statement, error) {
	if len(values) == 0 {
		return Statement{}, fmt.Errorf("%w: update %s", ErrNoColumns, table)
	}

	var bindings core.Bindings

	assignments := make([]string, len(values))
	for i, cv := range values {
		marker, err := supply.Resolve(cv.Value, cv.Column, &bindings)
		if err != nil {
			return Statement{}, err
		}
		assignments[i] = cv.Column + " = " + marker
	}

	conditions, err := ParseConditions(where, supply, &bindings)
	if err != nil {
		return Statement{}, err
	}

	sqlText := "UPDATE " + table + " SET " + strings.Join(assignments, ", ")
	if clause := JoinConditions(conditions); clause != "" {
		sqlText += " " + clause
	}

	return Statement{SQL: sqlText, Bindings: bindings}, nil
}
