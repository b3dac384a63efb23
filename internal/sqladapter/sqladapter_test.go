package sqladapter

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bzstore/bzcore/internal/types"
)

func openTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	a, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	require.NoError(t, EnsureSchema(context.Background(), a))
	return a
}

func TestBuildDSNCarriesRequiredPragmas(t *testing.T) {
	dsn := BuildDSN("/tmp/index.db")
	require.Contains(t, dsn, "_pragma=journal_mode(WAL)")
	require.Contains(t, dsn, "_pragma=synchronous(NORMAL)")
	require.Contains(t, dsn, "_pragma=foreign_keys(ON)")
	require.Contains(t, dsn, "_pragma=busy_timeout(5000)")
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	a := openTestAdapter(t)
	require.NoError(t, EnsureSchema(context.Background(), a))
}

func TestSyncIssueUpsertsAndReplacesChildren(t *testing.T) {
	a := openTestAdapter(t)
	ctx := context.Background()

	issue := &types.Issue{
		ID: "bd-1", Title: "First", Status: types.StatusOpen, Priority: 2, IssueType: types.TypeTask,
		CreatedAt: 1000, UpdatedAt: 1000,
		Labels: []string{"urgent"},
	}
	require.NoError(t, SyncIssue(ctx, a, issue))

	var title string
	var labelCount int
	require.NoError(t, a.db.QueryRowContext(ctx, `SELECT title FROM issues WHERE id = ?`, "bd-1").Scan(&title))
	require.Equal(t, "First", title)
	require.NoError(t, a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM labels WHERE issue_id = ?`, "bd-1").Scan(&labelCount))
	require.Equal(t, 1, labelCount)

	issue.Title = "Updated"
	issue.Labels = nil
	require.NoError(t, SyncIssue(ctx, a, issue))

	require.NoError(t, a.db.QueryRowContext(ctx, `SELECT title FROM issues WHERE id = ?`, "bd-1").Scan(&title))
	require.Equal(t, "Updated", title)
	require.NoError(t, a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM labels WHERE issue_id = ?`, "bd-1").Scan(&labelCount))
	require.Equal(t, 0, labelCount)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	a := openTestAdapter(t)
	ctx := context.Background()

	err := a.Transaction(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, `INSERT INTO issues (id, title, status, priority, issue_type, created_at, updated_at) VALUES ('bd-x','t','open',0,'task',1,1)`); err != nil {
			return err
		}
		return sql.ErrTxDone
	})
	require.Error(t, err)

	var count int
	require.NoError(t, a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues WHERE id = 'bd-x'`).Scan(&count))
	require.Equal(t, 0, count)
}

func TestTransactionCommitsOnSuccess(t *testing.T) {
	a := openTestAdapter(t)
	ctx := context.Background()

	err := a.Transaction(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, `INSERT INTO issues (id, title, status, priority, issue_type, created_at, updated_at) VALUES ('bd-y','t','open',0,'task',1,1)`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues WHERE id = 'bd-y'`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestStatementQueryStepReset(t *testing.T) {
	a := openTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, SyncIssue(ctx, a, &types.Issue{ID: "bd-1", Title: "One", Status: types.StatusOpen, IssueType: types.TypeTask, CreatedAt: 1, UpdatedAt: 1}))
	require.NoError(t, SyncIssue(ctx, a, &types.Issue{ID: "bd-2", Title: "Two", Status: types.StatusOpen, IssueType: types.TypeTask, CreatedAt: 2, UpdatedAt: 2}))

	stmt, err := a.Prepare(ctx, `SELECT id, title FROM issues ORDER BY id`)
	require.NoError(t, err)
	defer stmt.Close()

	require.NoError(t, stmt.Query(ctx))
	var ids []string
	for {
		row, done, err := stmt.Step()
		require.NoError(t, err)
		if done {
			break
		}
		require.True(t, row)
		id, ok := stmt.ColumnText(0)
		require.True(t, ok)
		ids = append(ids, id)
	}
	require.Equal(t, []string{"bd-1", "bd-2"}, ids)

	stmt.Reset()
	require.NoError(t, stmt.Query(ctx))
	row, done, err := stmt.Step()
	require.NoError(t, err)
	require.False(t, done)
	require.True(t, row)
}

func TestClassifyDetectsBusyAndCorrupt(t *testing.T) {
	require.ErrorIs(t, classify(fmt.Errorf("database is locked")), ErrBusyTimeout)
	require.ErrorIs(t, classify(fmt.Errorf("file is not a database")), ErrCorrupt)
}
