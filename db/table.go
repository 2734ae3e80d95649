package db

import (
	"fmt"
	"io"
	"strings"
)

// Table renders rows of arbitrary values as an ASCII grid.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a table writing to w.
func NewTable(w io.Writer) *Table {
	return &Table{writer: w}
}

// Header sets the column headers.
func (t *Table) Header(headers []string) {
	t.headers = headers
}

// Row adds one row of values, formatted on the way in.
func (t *Table) Row(cells []any) {
	formatted := make([]string, len(cells))
	for i, cell := range cells {
		formatted[i] = formatCell(cell)
	}
	t.rows = append(t.rows, formatted)
}

// Render writes the table.
func (t *Table) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}

	widths := t.widths()
	separator := t.separator(widths)

	fmt.Fprintln(t.writer, separator)
	if len(t.headers) > 0 {
		fmt.Fprintln(t.writer, t.line(t.headers, widths))
		fmt.Fprintln(t.writer, separator)
	}
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, t.line(row, widths))
	}
	fmt.Fprintln(t.writer, separator)
}

// formatCell renders one value for display. NULLs render as the keyword,
// raw bytes as text.
func formatCell(v any) string {
	switch cell := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(cell)
	case string:
		return cell
	default:
		return fmt.Sprint(cell)
	}
}

func (t *Table) widths() []int {
	count := len(t.headers)
	for _, row := range t.rows {
		if len(row) > count {
			count = len(row)
		}
	}

	widths := make([]int, count)
	for i, h := range t.headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < count && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}

func (t *Table) separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func (t *Table) line(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", w-len(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}
