// Package sqladapter wraps an embedded, file-backed SQL engine
// (modernc.org/sqlite, pure Go, no cgo) behind a small prepared
// statement surface used to maintain an optional secondary index over
// the JSONL-backed IssueStore.
package sqladapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

const BusyTimeoutMs = 5000

var (
	ErrOpenFailed    = errors.New("sqladapter: open failed")
	ErrPrepareFailed = errors.New("sqladapter: prepare failed")
	ErrBindFailed    = errors.New("sqladapter: bind failed")
	ErrStepFailed    = errors.New("sqladapter: step failed")
	ErrExecuteFailed = errors.New("sqladapter: execute failed")
	ErrBusyTimeout   = errors.New("sqladapter: database busy")
	ErrCorrupt       = errors.New("sqladapter: database corrupt")
)

// Adapter owns one *sql.DB configured with WAL journaling, NORMAL
// synchronous, foreign keys on, and a 5s busy timeout.
type Adapter struct {
	db         *sql.DB
	lastErr    error
	lastInsert int64
	lastChange int64
}

// BuildDSN composes the file: URI DSN carrying the pragma set this
// adapter requires, following the same "_pragma=name(value)" query
// string convention the teacher's own SQLiteConnString helper uses.
func BuildDSN(path string) string {
	var b strings.Builder
	b.WriteString("file:")
	b.WriteString(path)
	b.WriteString("?_pragma=journal_mode(WAL)")
	b.WriteString("&_pragma=synchronous(NORMAL)")
	b.WriteString("&_pragma=foreign_keys(ON)")
	b.WriteString(fmt.Sprintf("&_pragma=busy_timeout(%d)", BusyTimeoutMs))
	return b.String()
}

// Open establishes a connection pool against path with the standard
// pragma set applied via the DSN.
func Open(path string) (*Adapter, error) {
	db, err := sql.Open(driverName, BuildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, classify(err))
	}
	return &Adapter{db: db}, nil
}

// Close releases the underlying connection pool.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Exec runs a non-query statement, recording lastInsertRowId and
// changes for LastInsertRowID/Changes.
func (a *Adapter) Exec(ctx context.Context, query string, args ...any) error {
	res, err := a.db.ExecContext(ctx, query, args...)
	if err != nil {
		a.lastErr = err
		return fmt.Errorf("%w: %v", ErrExecuteFailed, classify(err))
	}
	if id, err := res.LastInsertId(); err == nil {
		a.lastInsert = id
	}
	if n, err := res.RowsAffected(); err == nil {
		a.lastChange = n
	}
	return nil
}

// LastInsertRowID returns the rowid from the most recent successful Exec.
func (a *Adapter) LastInsertRowID() int64 { return a.lastInsert }

// Changes returns the row count affected by the most recent successful Exec.
func (a *Adapter) Changes() int64 { return a.lastChange }

// ErrorMessage returns the text of the most recent failed Exec, or ""
// if none has failed. Errors from Prepare, Transaction and Statement
// calls are not recorded here.
func (a *Adapter) ErrorMessage() string {
	if a.lastErr == nil {
		return ""
	}
	return a.lastErr.Error()
}

// Prepare compiles query against the ambient connection pool.
func (a *Adapter) Prepare(ctx context.Context, query string) (*Statement, error) {
	stmt, err := a.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrepareFailed, classify(err))
	}
	return &Statement{stmt: stmt}, nil
}

// Transaction runs fn against a dedicated connection inside a raw
// BEGIN IMMEDIATE / COMMIT block, rolling back (and swallowing the
// rollback's own error) on any failure raised by fn and re-surfacing
// the original error. fn receives the *sql.Conn directly rather than
// a *sql.Tx: database/sql's BeginTx cannot issue BEGIN IMMEDIATE (it
// always opens DEFERRED), so the transaction is driven with raw
// ExecContext/QueryContext calls on one dedicated connection instead
// of the ambient pool, which is otherwise free to hand different
// statements in the same logical transaction to different underlying
// connections.
func (a *Adapter) Transaction(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := a.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquiring connection: %v", ErrExecuteFailed, classify(err))
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("%w: begin immediate: %v", ErrExecuteFailed, classify(err))
	}

	if err := fn(conn); err != nil {
		conn.ExecContext(context.Background(), "ROLLBACK")
		return err
	}
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		conn.ExecContext(context.Background(), "ROLLBACK")
		return fmt.Errorf("%w: commit: %v", ErrExecuteFailed, classify(err))
	}
	return nil
}

// classify maps a driver error to this package's taxonomy where the
// underlying message indicates a busy/locked or corrupt database;
// other errors pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "busy"):
		return fmt.Errorf("%w: %v", ErrBusyTimeout, err)
	case strings.Contains(msg, "malformed"), strings.Contains(msg, "not a database"), strings.Contains(msg, "corrupt"):
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	default:
		return err
	}
}
