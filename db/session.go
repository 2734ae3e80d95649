package db

import (
	"log"

	"github.com/mallard-db/mallard/core"
)

// Failure describes one failed operation: the operation name, the SQL and
// bindings in flight when it failed, and the error itself.
type Failure struct {
	Op       string
	SQL      string
	Bindings string
	Err      error
}

// Reporter receives failure diagnostics. Implementations must not return
// errors; reporting is best effort.
type Reporter interface {
	Report(Failure)
}

// logReporter is the default Reporter, writing through the standard
// logger.
type logReporter struct{}

func (logReporter) Report(f Failure) {
	log.Printf("%s failed: %v (sql=%q bindings=%s)", f.Op, f.Err, f.SQL, f.Bindings)
}

// Session holds the diagnostics of the operation currently in flight. The
// fields are set at the start of each operation and read only when that
// same operation fails. One Session belongs to one Engine; it is not safe
// to share across goroutines.
type Session struct {
	reporter Reporter

	op       string
	sqlText  string
	bindings string
}

// NewSession builds a session reporting through the given Reporter, or
// the standard logger when nil.
func NewSession(reporter Reporter) *Session {
	if reporter == nil {
		reporter = logReporter{}
	}
	return &Session{reporter: reporter}
}

func (s *Session) begin(op, sqlText string, bindings *core.Bindings) {
	s.op = op
	s.sqlText = sqlText
	if bindings != nil {
		s.bindings = bindings.String()
	} else {
		s.bindings = "{}"
	}
}

// fail reports the in-flight diagnostics together with err and returns
// err unchanged, so callers can report and propagate in one step.
func (s *Session) fail(err error) error {
	s.reporter.Report(Failure{
		Op:       s.op,
		SQL:      s.sqlText,
		Bindings: s.bindings,
		Err:      err,
	})
	return err
}

// LastSQL returns the SQL text of the most recently started operation.
func (s *Session) LastSQL() string {
	return s.sqlText
}

// LastBindings returns the rendered bindings of the most recently started
// operation.
func (s *Session) LastBindings() string {
	return s.bindings
}
