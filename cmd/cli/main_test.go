package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mallard-db/mallard"
)

func setupTestCLI(t *testing.T) *CLI {
	instance, err := mallard.OpenMemory()
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { instance.Close() })

	return &CLI{
		engine:  instance.Engine(),
		history: make([]string, 0),
	}
}

func TestCLIAddToHistory(t *testing.T) {
	cli := setupTestCLI(t)

	cli.addToHistory("SELECT * FROM test")
	cli.addToHistory("INSERT INTO test VALUES (1)")

	if len(cli.history) != 2 {
		t.Errorf("Expected 2 history entries, got %d", len(cli.history))
	}

	// Adding duplicate of last command should not increase count
	cli.addToHistory("INSERT INTO test VALUES (1)")
	if len(cli.history) != 2 {
		t.Errorf("Expected 2 history entries after duplicate, got %d", len(cli.history))
	}
}

func TestCLIHistoryLimit(t *testing.T) {
	cli := setupTestCLI(t)

	for i := 0; i < 1100; i++ {
		cli.addToHistory(fmt.Sprintf("SELECT %d", i))
	}

	if len(cli.history) > 1000 {
		t.Errorf("Expected history to be limited to 1000, got %d", len(cli.history))
	}
}

func TestCLIGetPrompt(t *testing.T) {
	cli := setupTestCLI(t)

	prompt := cli.getPrompt(false)
	if !strings.Contains(prompt, "mallard") {
		t.Error("Expected prompt to contain 'mallard'")
	}

	prompt = cli.getPrompt(true)
	if !strings.Contains(prompt, "...>") {
		t.Error("Expected multi-line prompt to contain '...>'")
	}
}

func TestCLIHandleCommand(t *testing.T) {
	cli := setupTestCLI(t)

	tests := []struct {
		command  string
		expected bool // should return true (command handled)
	}{
		{".help", true},
		{".version", true},
		{".history", true},
		{".journal", true},
		{".unknown", true}, // Unknown commands are still handled (with error message)
	}

	for _, test := range tests {
		result := cli.handleCommand(test.command)
		if result != test.expected {
			t.Errorf("handleCommand(%s) = %v, expected %v", test.command, result, test.expected)
		}
	}
}

func TestVersionVariable(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"single statement", "SELECT * FROM test", 1},
		{"two statements", "SELECT * FROM a; SELECT * FROM b", 2},
		{"with semicolons", "INSERT INTO t VALUES (1); INSERT INTO t VALUES (2);", 2},
		{"with comments", "-- comment\nSELECT * FROM test", 1},
		{"multiline", "CREATE TABLE t (\n  id INTEGER,\n  name VARCHAR\n);", 1},
		{"empty", "", 0},
		{"only semicolons", ";;;", 0},
		{"string with semicolon", "INSERT INTO t (s) VALUES ('a;b')", 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := splitStatements(test.input)
			if len(result) != test.expected {
				t.Errorf("splitStatements(%q) = %d statements, expected %d", test.input, len(result), test.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		max      int
		expected string
	}{
		{"short", 10, "short"},
		{"this is a long string", 10, "this is..."},
		{"exact", 5, "exact"},
		{"ab", 10, "ab"},
	}

	for _, test := range tests {
		result := truncate(test.input, test.max)
		if result != test.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q", test.input, test.max, result, test.expected)
		}
	}
}

func TestImportFile(t *testing.T) {
	cli := setupTestCLI(t)

	err := cli.importFile("../../examples/shop.sql")
	if err != nil {
		t.Fatalf("importFile failed: %v", err)
	}

	count, err := cli.engine.SelectCell("SELECT COUNT(*) FROM products")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if fmt.Sprint(count) != "5" {
		t.Errorf("Expected 5 products, got %v", count)
	}

	count, err = cli.engine.SelectCell("SELECT COUNT(*) FROM customers")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if fmt.Sprint(count) != "3" {
		t.Errorf("Expected 3 customers, got %v", count)
	}

	// The restock UPDATE in the file should have taken effect
	stock, err := cli.engine.SelectCell("SELECT stock FROM products WHERE name = ?", "Mouse")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if fmt.Sprint(stock) != "60" {
		t.Errorf("Expected stock 60, got %v", stock)
	}
}

func TestImportFileNotFound(t *testing.T) {
	cli := setupTestCLI(t)

	err := cli.importFile("nonexistent.sql")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestImportCommand(t *testing.T) {
	cli := setupTestCLI(t)

	result := cli.handleCommand(".import")
	if !result {
		t.Error("Expected .import to be handled")
	}
}
