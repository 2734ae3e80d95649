package db

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mallard-db/mallard/core"
	"github.com/mallard-db/mallard/sql"
)

// Rowset is a fetched result in driver order: column names plus one value
// slice per row, aligned with the columns.
type Rowset struct {
	Columns []string
	Rows    [][]any
}

// Executor runs statements against the database. Implementations prepare
// once, bind once and execute once per call; no retries.
type Executor interface {
	Query(sqlText string, bindings *core.Bindings) (Rowset, error)
	Exec(sqlText string, bindings *core.Bindings) (int64, error)
	Close() error
}

// Recorder receives every successful mutating statement, after execution.
// Recording failures are reported but never fail the statement.
type Recorder interface {
	Record(sqlText, bindings, class string, rows int64) error
}

// Engine funnels all statement execution through one dispatcher: classify
// the SQL, guard it, execute it through the Executor and shape the result
// by command class. Statements are serialized by an internal mutex.
type Engine struct {
	mu       sync.Mutex
	executor Executor
	catalog  Catalog
	session  *Session
	recorder Recorder
	remote   RemoteOptions
}

type Option func(*Engine)

// WithReporter routes failure diagnostics to r instead of the standard
// logger.
func WithReporter(r Reporter) Option {
	return func(engine *Engine) { engine.session = NewSession(r) }
}

// WithRecorder journals successful mutating statements through rec.
func WithRecorder(rec Recorder) Option {
	return func(engine *Engine) { engine.recorder = rec }
}

// WithRemoteOptions configures credentials for s3:// transfer endpoints.
func WithRemoteOptions(remote RemoteOptions) Option {
	return func(engine *Engine) { engine.remote = remote }
}

func NewEngine(executor Executor, catalog Catalog, opts ...Option) *Engine {
	engine := &Engine{
		executor: executor,
		catalog:  catalog,
		session:  NewSession(nil),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Session exposes the engine's diagnostics session.
func (engine *Engine) Session() *Session {
	return engine.session
}

// Close releases the underlying executor.
func (engine *Engine) Close() error {
	return engine.executor.Close()
}

// Run executes one raw statement with explicit bindings and returns the
// class-shaped result.
func (engine *Engine) Run(sqlText string, bindings core.Bindings) (Result, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.run("run", sqlText, &bindings)
}

func (engine *Engine) run(op, sqlText string, bindings *core.Bindings) (Result, error) {
	engine.session.begin(op, sqlText, bindings)
	startTime := time.Now()

	class := sql.Classify(sqlText)
	switch class {
	case sql.Read:
		rowset, err := engine.executor.Query(sqlText, bindings)
		if err != nil {
			return nil, engine.session.fail(fmt.Errorf("query: %w", err))
		}
		return QueryResult{
			Columns:    rowset.Columns,
			Rows:       associate(rowset),
			ElapsedSec: time.Since(startTime).Seconds(),
		}, nil

	case sql.Delete, sql.Insert, sql.Update:
		if class == sql.Delete && !sql.HasWhereClause(sqlText) {
			return nil, engine.session.fail(fmt.Errorf("%w: %s", sql.ErrMissingWhere, sqlText))
		}
		count, err := engine.executor.Exec(sqlText, bindings)
		if err != nil {
			return nil, engine.session.fail(fmt.Errorf("exec: %w", err))
		}
		engine.record(sqlText, bindings, class, count)
		return ExecResult{
			RowsAffected: count,
			ElapsedSec:   time.Since(startTime).Seconds(),
		}, nil

	case sql.DDL:
		if _, err := engine.executor.Exec(sqlText, bindings); err != nil {
			return nil, engine.session.fail(fmt.Errorf("exec: %w", err))
		}
		engine.record(sqlText, bindings, class, 0)
		return SchemaResult{
			OK:         true,
			ElapsedSec: time.Since(startTime).Seconds(),
		}, nil

	default:
		return nil, engine.session.fail(fmt.Errorf("%w: %s", sql.ErrUnsupportedCommand, sqlText))
	}
}

func (engine *Engine) record(sqlText string, bindings *core.Bindings, class sql.CommandClass, rows int64) {
	if engine.recorder == nil {
		return
	}
	if err := engine.recorder.Record(sqlText, bindings.String(), class.String(), rows); err != nil {
		engine.session.fail(fmt.Errorf("record: %w", err))
	}
}

// Select fetches associative rows. Markers in the SQL bind from args:
// core.Args maps contribute named bindings, every other value is
// positional in order.
func (engine *Engine) Select(sqlText string, args ...any) (QueryResult, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	bindings := supplyFrom(args).Passthrough()
	result, err := engine.run("select", sqlText, &bindings)
	if err != nil {
		return QueryResult{}, err
	}
	query, ok := result.(QueryResult)
	if !ok {
		return QueryResult{}, engine.session.fail(fmt.Errorf("%w: not a read statement", sql.ErrUnsupportedCommand))
	}
	return query, nil
}

// SelectCell fetches the first column of the first row, ErrNoRows when
// the query matches nothing.
func (engine *Engine) SelectCell(sqlText string, args ...any) (any, error) {
	query, err := engine.Select(sqlText, args...)
	if err != nil {
		return nil, err
	}
	cell, err := query.Cell()
	if err != nil {
		return nil, engine.session.fail(err)
	}
	return cell, nil
}

// Insert filters values through the catalog, builds a parameterized
// INSERT and executes it, returning the affected-row count.
func (engine *Engine) Insert(table string, values core.Row, args ...any) (int64, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.session.begin("insert", "", nil)
	columns, err := filterColumns(engine.catalog, table, values)
	if err != nil {
		return 0, engine.session.fail(err)
	}
	statement, err := sql.BuildInsert(table, columns, supplyFrom(args))
	if err != nil {
		return 0, engine.session.fail(err)
	}
	return engine.execBuilt("insert", statement)
}

// Update filters values through the catalog, builds a parameterized
// UPDATE with the given WHERE specification and executes it.
func (engine *Engine) Update(table string, values core.Row, where string, args ...any) (int64, error) {
	return engine.update(table, values, sql.Where(where), args)
}

// UpdateWhere is Update with the WHERE specification as pre-split
// condition fragments, combined with AND in the given order.
func (engine *Engine) UpdateWhere(table string, values core.Row, conditions []string, args ...any) (int64, error) {
	return engine.update(table, values, sql.WhereAll(conditions...), args)
}

func (engine *Engine) update(table string, values core.Row, where sql.WhereSpec, args []any) (int64, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.session.begin("update", "", nil)
	columns, err := filterColumns(engine.catalog, table, values)
	if err != nil {
		return 0, engine.session.fail(err)
	}
	statement, err := sql.BuildUpdate(table, columns, where, supplyFrom(args))
	if err != nil {
		return 0, engine.session.fail(err)
	}
	return engine.execBuilt("update", statement)
}

// Delete executes a caller-supplied DELETE statement. Statements without
// a WHERE clause are rejected before execution.
func (engine *Engine) Delete(sqlText string, args ...any) (int64, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	bindings := supplyFrom(args).Passthrough()
	result, err := engine.run("delete", sqlText, &bindings)
	if err != nil {
		return 0, err
	}
	exec, ok := result.(ExecResult)
	if !ok {
		return 0, engine.session.fail(fmt.Errorf("%w: not a delete statement", sql.ErrUnsupportedCommand))
	}
	return exec.RowsAffected, nil
}

func (engine *Engine) execBuilt(op string, statement sql.Statement) (int64, error) {
	result, err := engine.run(op, statement.SQL, &statement.Bindings)
	if err != nil {
		return 0, err
	}
	exec, ok := result.(ExecResult)
	if !ok {
		return 0, engine.session.fail(fmt.Errorf("%w: %s built a non-exec statement", sql.ErrUnsupportedCommand, op))
	}
	return exec.RowsAffected, nil
}

// associate converts driver-ordered rows into associative rows.
func associate(rowset Rowset) []core.Row {
	rows := make([]core.Row, len(rowset.Rows))
	for i, values := range rowset.Rows {
		row := make(core.Row, len(rowset.Columns))
		for j, column := range rowset.Columns {
			if j < len(values) {
				row[column] = values[j]
			}
		}
		rows[i] = row
	}
	return rows
}

// supplyFrom partitions variadic arguments into the binding supply:
// core.Args maps merge into the named side, everything else queues
// positionally in order. Named keys may be given with or without the
// colon sigil.
func supplyFrom(args []any) *sql.Supply {
	var positional []any
	var named core.Args
	for _, arg := range args {
		if m, ok := arg.(core.Args); ok {
			if named == nil {
				named = core.Args{}
			}
			for k, v := range m {
				if !strings.HasPrefix(k, ":") {
					k = ":" + k
				}
				named[k] = v
			}
			continue
		}
		positional = append(positional, arg)
	}
	return sql.NewSupply(positional, named)
}
