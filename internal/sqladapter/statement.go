package sqladapter

import (
	"context"
	"database/sql"
	"fmt"
)

// Statement is a compiled query, reusable across binds via Reset.
type Statement struct {
	stmt *sql.Stmt
	rows *sql.Rows
	cols []any
}

// NullText binds an optional string positionally; a nil value binds SQL NULL.
func NullText(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

// NullInt64 binds an optional 64-bit integer positionally; a nil
// value binds SQL NULL.
func NullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// NullInt32 binds an optional 32-bit integer positionally; a nil
// value binds SQL NULL.
func NullInt32(v *int32) any {
	if v == nil {
		return nil
	}
	return *v
}

// Query binds args and executes the statement as a row-producing
// query. Call Step to advance and Reset to rebind.
func (s *Statement) Query(ctx context.Context, args ...any) error {
	if s.rows != nil {
		s.rows.Close()
		s.rows = nil
	}
	rows, err := s.stmt.QueryContext(ctx, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBindFailed, classify(err))
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return fmt.Errorf("%w: %v", ErrStepFailed, classify(err))
	}
	s.rows = rows
	s.cols = make([]any, len(cols))
	return nil
}

// Exec binds args and executes the statement as a non-query, clearing
// any prior Query cursor state.
func (s *Statement) Exec(ctx context.Context, args ...any) (sql.Result, error) {
	if s.rows != nil {
		s.rows.Close()
		s.rows = nil
	}
	res, err := s.stmt.ExecContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecuteFailed, classify(err))
	}
	return res, nil
}

// Step advances the cursor opened by Query. row is true if a row is
// available; done is true once the result set is exhausted.
func (s *Statement) Step() (row bool, done bool, err error) {
	if s.rows == nil {
		return false, true, nil
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return false, false, fmt.Errorf("%w: %v", ErrStepFailed, classify(err))
		}
		return false, true, nil
	}
	ptrs := make([]any, len(s.cols))
	for i := range ptrs {
		ptrs[i] = &s.cols[i]
	}
	if err := s.rows.Scan(ptrs...); err != nil {
		return false, false, fmt.Errorf("%w: %v", ErrStepFailed, classify(err))
	}
	return true, false, nil
}

// ColumnText returns the text value of column i and whether it was
// non-NULL.
func (s *Statement) ColumnText(i int) (string, bool) {
	v := s.cols[i]
	if v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	default:
		return fmt.Sprintf("%v", t), true
	}
}

// ColumnInt64 returns the integer value of column i and whether it
// was non-NULL.
func (s *Statement) ColumnInt64(i int) (int64, bool) {
	v := s.cols[i]
	if v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	default:
		return 0, false
	}
}

// Reset releases the current cursor so the statement can be
// re-bound with a fresh Query or Exec call.
func (s *Statement) Reset() {
	if s.rows != nil {
		s.rows.Close()
		s.rows = nil
	}
}

// Close releases the compiled statement.
func (s *Statement) Close() error {
	s.Reset()
	return s.stmt.Close()
}
