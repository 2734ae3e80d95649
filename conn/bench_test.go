package conn

import (
	"fmt"
	"testing"

	"github.com/mallard-db/mallard/core"
	"github.com/mallard-db/mallard/db"
)

// setupBenchmarkEngine creates an in-memory engine with test data
func setupBenchmarkEngine(b *testing.B) *db.Engine {
	c, err := OpenMemory()
	if err != nil {
		b.Fatalf("Failed to open database: %v", err)
	}
	b.Cleanup(func() { c.Close() })

	engine := db.NewEngine(c, c)

	if _, err := engine.Run("CREATE TABLE users (id INTEGER, name VARCHAR, age INTEGER, city VARCHAR)", core.Bindings{}); err != nil {
		b.Fatalf("CREATE TABLE failed: %v", err)
	}

	for i := 1; i <= 1000; i++ {
		_, err := engine.Insert("users", core.Row{
			"id":   i,
			"name": fmt.Sprintf("User%d", i),
			"age":  20 + i%50,
			"city": fmt.Sprintf("City%d", i%10),
		})
		if err != nil {
			b.Fatalf("INSERT failed: %v", err)
		}
	}

	return engine
}

func BenchmarkSelectAll(b *testing.B) {
	engine := setupBenchmarkEngine(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := engine.Select("SELECT * FROM users")
		if err != nil {
			b.Fatalf("Select error: %v", err)
		}
	}
}

func BenchmarkSelectWithWhere(b *testing.B) {
	engine := setupBenchmarkEngine(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := engine.Select("SELECT * FROM users WHERE age > :min", core.Args{"min": 30})
		if err != nil {
			b.Fatalf("Select error: %v", err)
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	engine := setupBenchmarkEngine(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := engine.Insert("users", core.Row{
			"id":   10000 + i,
			"name": "Bench",
			"age":  30,
			"city": "City0",
		})
		if err != nil {
			b.Fatalf("Insert error: %v", err)
		}
	}
}

func BenchmarkUpdate(b *testing.B) {
	engine := setupBenchmarkEngine(b)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := engine.Update("users", core.Row{"age": 31}, "id = ?", 500)
		if err != nil {
			b.Fatalf("Update error: %v", err)
		}
	}
}
