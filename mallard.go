package mallard

import (
	"github.com/mallard-db/mallard/conn"
	"github.com/mallard-db/mallard/db"
)

// Instance is an open database: the DuckDB connection plus everything
// needed to build engines on top of it.
type Instance struct {
	Conn *conn.Conn
}

// Open opens a database file, creating it when missing.
func Open(path string) (*Instance, error) {
	c, err := conn.Open(path)
	if err != nil {
		return nil, err
	}
	return &Instance{Conn: c}, nil
}

// OpenMemory opens an in-memory database.
func OpenMemory() (*Instance, error) {
	c, err := conn.OpenMemory()
	if err != nil {
		return nil, err
	}
	return &Instance{Conn: c}, nil
}

// Engine builds an execution engine over this instance. The connection
// serves as both executor and catalog.
func (instance *Instance) Engine(opts ...db.Option) *db.Engine {
	return db.NewEngine(instance.Conn, instance.Conn, opts...)
}

// Close closes the underlying connection.
func (instance *Instance) Close() error {
	return instance.Conn.Close()
}
