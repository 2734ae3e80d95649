package sql

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mallard-db/mallard/core"
)

func TestBuildInsertSynthesized(t *testing.T) {
	values := []core.ColumnValue{
		{Column: "name", Value: "mango"},
		{Column: "qty", Value: 3},
	}

	stmt, err := BuildInsert("fruits", values, NewSupply(nil, nil))
	if err != nil {
		t.Fatalf("BuildInsert failed: %v", err)
	}

	if stmt.SQL != "INSERT INTO fruits (name, qty) VALUES (?, ?)" {
		t.Errorf("unexpected statement: %s", stmt.SQL)
	}
	if pos := stmt.Bindings.Positional(); !reflect.DeepEqual(pos, []any{"mango", 3}) {
		t.Errorf("unexpected positional bindings: %v", pos)
	}
}

func TestBuildInsertPassthrough(t *testing.T) {
	values := []core.ColumnValue{
		{Column: "name", Value: ":name"},
		{Column: "qty", Value: "?"},
	}
	supply := NewSupply([]any{3}, core.Args{":name": "mango"})

	stmt, err := BuildInsert("fruits", values, supply)
	if err != nil {
		t.Fatalf("BuildInsert failed: %v", err)
	}

	if stmt.SQL != "INSERT INTO fruits (name, qty) VALUES (:name, ?)" {
		t.Errorf("unexpected statement: %s", stmt.SQL)
	}
	if v, ok := stmt.Bindings.Lookup(":name"); !ok || v != "mango" {
		t.Errorf("expected mango bound to :name, got %v", v)
	}
	if pos := stmt.Bindings.Positional(); !reflect.DeepEqual(pos, []any{3}) {
		t.Errorf("unexpected positional bindings: %v", pos)
	}
}

func TestBuildInsertNoColumns(t *testing.T) {
	_, err := BuildInsert("fruits", nil, NewSupply(nil, nil))
	if !errors.Is(err, ErrNoColumns) {
		t.Errorf("expected ErrNoColumns, got %v", err)
	}
}

func TestBuildUpdateSynthesized(t *testing.T) {
	values := []core.ColumnValue{
		{Column: "qty", Value: 5},
		{Column: "grade", Value: "a"},
	}

	stmt, err := BuildUpdate("fruits", values, Where("name = 'mango'"), NewSupply(nil, nil))
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}

	expected := "UPDATE fruits SET qty = :qty, grade = :grade WHERE name = :where_name"
	if stmt.SQL != expected {
		t.Errorf("statement = %s, expected %s", stmt.SQL, expected)
	}
	for marker, want := range map[string]any{":qty": 5, ":grade": "a", ":where_name": "mango"} {
		if v, ok := stmt.Bindings.Lookup(marker); !ok || v != want {
			t.Errorf("expected %v bound to %s, got %v", want, marker, v)
		}
	}
}

// The SET phase and the WHERE phase draw from one positional queue, so a
// marker in the WHERE specification consumes the value after the last one
// the assignments took.
func TestBuildUpdateSharedSupply(t *testing.T) {
	values := []core.ColumnValue{
		{Column: "qty", Value: "?"},
	}
	supply := NewSupply([]any{5, "mango"}, nil)

	stmt, err := BuildUpdate("fruits", values, Where("name = ?"), supply)
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}

	if stmt.SQL != "UPDATE fruits SET qty = ? WHERE name = ?" {
		t.Errorf("unexpected statement: %s", stmt.SQL)
	}
	if pos := stmt.Bindings.Positional(); !reflect.DeepEqual(pos, []any{5, "mango"}) {
		t.Errorf("unexpected positional bindings: %v", pos)
	}
}

// Two literal conditions on the same column must keep distinct markers
// and distinct values.
func TestBuildUpdateSameColumnRange(t *testing.T) {
	values := []core.ColumnValue{
		{Column: "name", Value: "mango"},
	}

	stmt, err := BuildUpdate("fruits", values, Where("qty > 1 AND qty < 5"), NewSupply(nil, nil))
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}

	expected := "UPDATE fruits SET name = :name WHERE qty > :where_qty AND qty < :where_qty_2"
	if stmt.SQL != expected {
		t.Errorf("statement = %s, expected %s", stmt.SQL, expected)
	}
	if v, _ := stmt.Bindings.Lookup(":where_qty"); v != "1" {
		t.Errorf("expected 1 bound to :where_qty, got %v", v)
	}
	if v, _ := stmt.Bindings.Lookup(":where_qty_2"); v != "5" {
		t.Errorf("expected 5 bound to :where_qty_2, got %v", v)
	}
}

func TestBuildUpdateMixedMarkers(t *testing.T) {
	values := []core.ColumnValue{
		{Column: "qty", Value: ":qty"},
		{Column: "grade", Value: "b"},
	}
	supply := NewSupply([]any{"mango"}, core.Args{":qty": 7})

	stmt, err := BuildUpdate("fruits", values, Where("name = ?"), supply)
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}

	if stmt.SQL != "UPDATE fruits SET qty = :qty, grade = :grade WHERE name = ?" {
		t.Errorf("unexpected statement: %s", stmt.SQL)
	}
	if v, _ := stmt.Bindings.Lookup(":grade"); v != "b" {
		t.Errorf("expected literal b bound to :grade, got %v", v)
	}
}

func TestBuildUpdateNoWhere(t *testing.T) {
	values := []core.ColumnValue{{Column: "qty", Value: 5}}

	stmt, err := BuildUpdate("fruits", values, WhereSpec{}, NewSupply(nil, nil))
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}
	if stmt.SQL != "UPDATE fruits SET qty = :qty" {
		t.Errorf("unexpected statement: %s", stmt.SQL)
	}
}

func TestBuildUpdateMalformedWhere(t *testing.T) {
	values := []core.ColumnValue{{Column: "qty", Value: 5}}

	_, err := BuildUpdate("fruits", values, Where("name mango"), NewSupply(nil, nil))
	if !errors.Is(err, ErrMalformedCondition) {
		t.Errorf("expected ErrMalformedCondition, got %v", err)
	}
}

// Building the same statement twice from equal inputs yields identical
// text and bindings.
func TestBuildIdempotent(t *testing.T) {
	values := []core.ColumnValue{
		{Column: "name", Value: "mango"},
		{Column: "qty", Value: 3},
	}

	first, err := BuildUpdate("fruits", values, Where("id = 9"), NewSupply(nil, nil))
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}
	second, err := BuildUpdate("fruits", values, Where("id = 9"), NewSupply(nil, nil))
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}

	if first.SQL != second.SQL || !reflect.DeepEqual(first.Bindings, second.Bindings) {
		t.Errorf("statements differ: %v vs %v", first, second)
	}
}
