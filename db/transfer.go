package db

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mallard-db/mallard/core"
)

// ExportCSV runs a query and streams its rows as CSV to a destination
// URL. The first record is the header. Destinations follow the transfer
// schemes: bare paths, file://, s3://.
func (engine *Engine) ExportCSV(dest, sqlText string, args ...any) (int, error) {
	query, err := engine.Select(sqlText, args...)
	if err != nil {
		return 0, err
	}

	w, err := openRemoteWriter(dest, engine.remote)
	if err != nil {
		return 0, engine.session.fail(fmt.Errorf("open %s: %w", dest, err))
	}
	defer w.Close()

	writer := csv.NewWriter(w)
	if err := writer.Write(query.Columns); err != nil {
		return 0, engine.session.fail(fmt.Errorf("write header: %w", err))
	}

	record := make([]string, len(query.Columns))
	for _, row := range query.Rows {
		for i, column := range query.Columns {
			record[i] = formatCell(row[column])
		}
		if err := writer.Write(record); err != nil {
			return 0, engine.session.fail(fmt.Errorf("write row: %w", err))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, engine.session.fail(fmt.Errorf("flush: %w", err))
	}
	if err := w.Close(); err != nil {
		return 0, engine.session.fail(fmt.Errorf("close %s: %w", dest, err))
	}
	return len(query.Rows), nil
}

// ImportCSV bulk-inserts CSV rows from a source URL into a table. The
// first record names the columns; each following record becomes one
// catalog-filtered INSERT. Returns the number of rows inserted.
func (engine *Engine) ImportCSV(table, src string) (int, error) {
	r, err := openRemoteReader(src, engine.remote)
	if err != nil {
		engine.session.begin("import", "", nil)
		return 0, engine.session.fail(fmt.Errorf("open %s: %w", src, err))
	}
	defer r.Close()

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		engine.session.begin("import", "", nil)
		return 0, engine.session.fail(fmt.Errorf("read header: %w", err))
	}

	inserted := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			engine.session.begin("import", "", nil)
			return inserted, engine.session.fail(fmt.Errorf("read row: %w", err))
		}

		values := make(core.Row, len(header))
		for i, column := range header {
			if i < len(record) {
				values[column] = record[i]
			}
		}
		if _, err := engine.Insert(table, values); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
