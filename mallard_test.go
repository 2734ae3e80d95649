package mallard

import (
	"testing"

	"github.com/mallard-db/mallard/core"
	"github.com/mallard-db/mallard/db"
	"github.com/mallard-db/mallard/journal"
)

func TestInstanceLifecycle(t *testing.T) {
	instance, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	defer instance.Close()

	j, err := journal.OpenMemory(core.Identity{Name: "tester", Email: "t@example.com"})
	if err != nil {
		t.Fatalf("journal failed: %v", err)
	}
	engine := instance.Engine(db.WithRecorder(j))

	if _, err := engine.Run("CREATE TABLE fruits (name VARCHAR, qty INTEGER)", core.Bindings{}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := engine.Insert("fruits", core.Row{"name": "mango", "qty": 3}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := engine.Update("fruits", core.Row{"qty": 5}, "name = ?", "mango"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rows, err := engine.Select("SELECT name, qty FROM fruits")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(rows.Rows) != 1 || rows.Rows[0]["name"] != "mango" {
		t.Errorf("unexpected rows: %v", rows.Rows)
	}

	// create, insert and update are journaled; the select is not
	if j.Len() != 3 {
		t.Errorf("expected 3 journal entries, got %d", j.Len())
	}
}
