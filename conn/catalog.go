package conn

import (
	"fmt"
	"strings"
)

// Columns returns the table's column names in ordinal position order.
func (c *Conn) Columns(table string) ([]string, error) {
	rows, err := c.handle.Query(
		"SELECT column_name FROM information_schema.columns WHERE table_name = ? ORDER BY ordinal_position",
		table)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("catalog scan: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows: %w", err)
	}
	return columns, nil
}

// Generated reports the columns the database fills itself, detected by a
// sequence-drawing default (nextval).
func (c *Conn) Generated(table string) (map[string]bool, error) {
	rows, err := c.handle.Query(
		"SELECT column_name, coalesce(column_default, '') FROM information_schema.columns WHERE table_name = ?",
		table)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}
	defer rows.Close()

	generated := make(map[string]bool)
	for rows.Next() {
		var name, dflt string
		if err := rows.Scan(&name, &dflt); err != nil {
			return nil, fmt.Errorf("catalog scan: %w", err)
		}
		if strings.Contains(strings.ToLower(dflt), "nextval(") {
			generated[name] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog rows: %w", err)
	}
	return generated, nil
}
