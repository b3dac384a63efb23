package sqladapter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bzstore/bzcore/internal/types"
)

// schemaStatements creates the IndexedIssueView tables mirroring the
// JSONL-backed issue shape, plus covering indexes on the fields List
// filters most commonly query.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS issues (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		priority INTEGER NOT NULL,
		issue_type TEXT NOT NULL,
		assignee TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(status)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_priority ON issues(priority)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_assignee ON issues(assignee)`,
	`CREATE TABLE IF NOT EXISTS labels (
		issue_id TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		PRIMARY KEY (issue_id, label)
	)`,
	`CREATE TABLE IF NOT EXISTS dependencies (
		issue_id TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
		depends_on_id TEXT NOT NULL,
		dep_type TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (issue_id, depends_on_id, dep_type)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id INTEGER NOT NULL,
		issue_id TEXT NOT NULL REFERENCES issues(id) ON DELETE CASCADE,
		author TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (issue_id, id)
	)`,
}

// EnsureSchema creates the IndexedIssueView tables and indexes if absent.
func EnsureSchema(ctx context.Context, a *Adapter) error {
	for _, stmt := range schemaStatements {
		if err := a.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("sqladapter: ensure schema: %w", err)
		}
	}
	return nil
}

// SyncIssue upserts one issue's row and its label/dependency/comment
// child rows, replacing any prior child rows in full. Intended as the
// per-dirty-id re-sync step a Repository.Flush performs after saving
// the JSONL store.
func SyncIssue(ctx context.Context, a *Adapter, issue *types.Issue) error {
	return a.Transaction(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, `
			INSERT INTO issues (id, title, status, priority, issue_type, assignee, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title=excluded.title, status=excluded.status, priority=excluded.priority,
				issue_type=excluded.issue_type, assignee=excluded.assignee,
				created_at=excluded.created_at, updated_at=excluded.updated_at
		`, issue.ID, issue.Title, issue.Status.String(), int(issue.Priority), issue.IssueType.String(),
			nullableString(issue.Assignee), issue.CreatedAt, issue.UpdatedAt); err != nil {
			return fmt.Errorf("sqladapter: upsert issue %s: %w", issue.ID, err)
		}

		if _, err := conn.ExecContext(ctx, `DELETE FROM labels WHERE issue_id = ?`, issue.ID); err != nil {
			return fmt.Errorf("sqladapter: clear labels for %s: %w", issue.ID, err)
		}
		for _, label := range issue.Labels {
			if _, err := conn.ExecContext(ctx, `INSERT INTO labels (issue_id, label) VALUES (?, ?)`, issue.ID, label); err != nil {
				return fmt.Errorf("sqladapter: insert label %s/%s: %w", issue.ID, label, err)
			}
		}

		if _, err := conn.ExecContext(ctx, `DELETE FROM dependencies WHERE issue_id = ?`, issue.ID); err != nil {
			return fmt.Errorf("sqladapter: clear dependencies for %s: %w", issue.ID, err)
		}
		for _, dep := range issue.Dependencies {
			if _, err := conn.ExecContext(ctx, `
				INSERT INTO dependencies (issue_id, depends_on_id, dep_type, created_at) VALUES (?, ?, ?, ?)
			`, dep.IssueID, dep.DependsOnID, dep.Type.String(), dep.CreatedAt); err != nil {
				return fmt.Errorf("sqladapter: insert dependency %s->%s: %w", dep.IssueID, dep.DependsOnID, err)
			}
		}

		if _, err := conn.ExecContext(ctx, `DELETE FROM comments WHERE issue_id = ?`, issue.ID); err != nil {
			return fmt.Errorf("sqladapter: clear comments for %s: %w", issue.ID, err)
		}
		for _, c := range issue.Comments {
			if _, err := conn.ExecContext(ctx, `
				INSERT INTO comments (id, issue_id, author, body, created_at) VALUES (?, ?, ?, ?, ?)
			`, c.ID, c.IssueID, c.Author, c.Body, c.CreatedAt); err != nil {
				return fmt.Errorf("sqladapter: insert comment %d for %s: %w", c.ID, issue.ID, err)
			}
		}
		return nil
	})
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
