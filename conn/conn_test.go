package conn

import (
	"errors"
	"testing"

	"github.com/mallard-db/mallard/core"
	"github.com/mallard-db/mallard/db"
	"github.com/mallard-db/mallard/sql"
)

func openFruits(t *testing.T) *Conn {
	t.Helper()

	c, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	setup := []string{
		"CREATE SEQUENCE fruit_ids",
		"CREATE TABLE fruits (id INTEGER DEFAULT nextval('fruit_ids'), name VARCHAR, qty INTEGER)",
	}
	for _, stmt := range setup {
		if _, err := c.Exec(stmt, &core.Bindings{}); err != nil {
			t.Fatalf("setup %q failed: %v", stmt, err)
		}
	}
	return c
}

func TestExecAndQuery(t *testing.T) {
	c := openFruits(t)

	var bindings core.Bindings
	bindings.Add(core.PositionalMarker, "mango")
	bindings.Add(core.PositionalMarker, 3)
	count, err := c.Exec("INSERT INTO fruits (name, qty) VALUES (?, ?)", &bindings)
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row affected, got %d", count)
	}

	var named core.Bindings
	named.Add(":name", "mango")
	rowset, err := c.Query("SELECT name, qty FROM fruits WHERE name = :name", &named)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(rowset.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rowset.Rows))
	}
	if rowset.Columns[0] != "name" || rowset.Columns[1] != "qty" {
		t.Errorf("unexpected columns: %v", rowset.Columns)
	}
}

func TestQueryUnresolvedMarker(t *testing.T) {
	c := openFruits(t)

	_, err := c.Query("SELECT * FROM fruits WHERE name = :name", &core.Bindings{})
	if !errors.Is(err, sql.ErrUnresolvedBinding) {
		t.Errorf("expected ErrUnresolvedBinding, got %v", err)
	}
}

func TestCatalog(t *testing.T) {
	c := openFruits(t)

	columns, err := c.Columns("fruits")
	if err != nil {
		t.Fatalf("Columns failed: %v", err)
	}
	if len(columns) != 3 || columns[0] != "id" || columns[1] != "name" || columns[2] != "qty" {
		t.Errorf("unexpected columns: %v", columns)
	}

	generated, err := c.Generated("fruits")
	if err != nil {
		t.Fatalf("Generated failed: %v", err)
	}
	if !generated["id"] {
		t.Errorf("expected id to be generated: %v", generated)
	}
	if generated["name"] {
		t.Errorf("name must not be generated: %v", generated)
	}
}

func TestEngineOverDuckDB(t *testing.T) {
	c := openFruits(t)
	engine := db.NewEngine(c, c)

	for _, fruit := range []core.Row{
		{"name": "mango", "qty": 3},
		{"name": "papaya", "qty": 1},
	} {
		if _, err := engine.Insert("fruits", fruit); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	count, err := engine.Update("fruits", core.Row{"qty": 5}, "name = 'mango'")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row updated, got %d", count)
	}

	cell, err := engine.SelectCell("SELECT qty FROM fruits WHERE name = ?", "mango")
	if err != nil {
		t.Fatalf("SelectCell failed: %v", err)
	}
	if cell != int32(5) && cell != int64(5) {
		t.Errorf("expected 5, got %v (%T)", cell, cell)
	}

	deleted, err := engine.Delete("DELETE FROM fruits WHERE name = ?", "papaya")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 row deleted, got %d", deleted)
	}
}
