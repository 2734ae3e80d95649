package journal

import (
	"testing"

	"github.com/mallard-db/mallard/core"
)

var tester = core.Identity{Name: "tester", Email: "tester@example.com"}

func TestRecordAndHistory(t *testing.T) {
	j, err := OpenMemory(tester)
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}

	statements := []string{
		"INSERT INTO fruits (name) VALUES (?)",
		"UPDATE fruits SET qty = :qty WHERE name = :where_name",
		"DELETE FROM fruits WHERE name = 'papaya'",
	}
	for i, stmt := range statements {
		if err := j.Record(stmt, "{}", "class", int64(i)); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	if j.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", j.Len())
	}

	entries, err := j.History(2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// newest first
	if entries[0].SQL != statements[2] {
		t.Errorf("unexpected newest entry: %s", entries[0].SQL)
	}
	if entries[1].SQL != statements[1] {
		t.Errorf("unexpected second entry: %s", entries[1].SQL)
	}
	if entries[0].Rows != 2 {
		t.Errorf("unexpected row count: %d", entries[0].Rows)
	}
}

func TestHistoryUnlimited(t *testing.T) {
	j, err := OpenMemory(tester)
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}

	entries, err := j.History(0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(entries))
	}

	if err := j.Record("CREATE TABLE t (id INTEGER)", "{}", "ddl", 0); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	entries, err = j.History(0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Class != "ddl" {
		t.Errorf("unexpected history: %v", entries)
	}
}

func TestOpenReloadsSequence(t *testing.T) {
	dir := t.TempDir()

	j, err := Open(dir, tester)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := j.Record("INSERT INTO t (a) VALUES (1)", "{}", "insert", 1); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := j.Record("INSERT INTO t (a) VALUES (2)", "{}", "insert", 1); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	reopened, err := Open(dir, tester)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Len() != 2 {
		t.Errorf("expected 2 entries after reopen, got %d", reopened.Len())
	}

	if err := reopened.Record("INSERT INTO t (a) VALUES (3)", "{}", "insert", 1); err != nil {
		t.Fatalf("Record after reopen failed: %v", err)
	}
	entries, err := reopened.History(1)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if entries[0].SQL != "INSERT INTO t (a) VALUES (3)" {
		t.Errorf("unexpected newest entry: %s", entries[0].SQL)
	}
}
