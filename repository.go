// Package bzcore is the storage core of an issue-tracking engine: a
// JSONL-backed IssueStore with versioned migrations, an optional
// SQLite secondary index, and advisory cross-process locking.
// Repository is the single entry point for callers outside this
// module; the component packages live under internal/ and can be
// imported only from within the module.
package bzcore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bzstore/bzcore/internal/jsonl"
	"github.com/bzstore/bzcore/internal/locker"
	"github.com/bzstore/bzcore/internal/lockmetrics"
	"github.com/bzstore/bzcore/internal/metadatafile"
	"github.com/bzstore/bzcore/internal/migrate"
	"github.com/bzstore/bzcore/internal/sqladapter"
	"github.com/bzstore/bzcore/internal/store"
	"github.com/bzstore/bzcore/internal/types"
)

const (
	issuesFileName = "issues.jsonl"
	indexFileName  = "index.db"
)

type openConfig struct {
	backupKeepCount int
	withSQLIndex    bool
	withLock        bool
	toolVersion     string
}

// Option configures Open. The zero value of openConfig is never used
// directly; Open starts from sane defaults and applies each Option in
// order, following the teacher's functional-options convention rather
// than a public config struct a caller could half-populate.
type Option func(*openConfig)

func WithBackupKeepCount(n int) Option {
	return func(c *openConfig) { c.backupKeepCount = n }
}

func WithSQLIndex() Option {
	return func(c *openConfig) { c.withSQLIndex = true }
}

func WithLock() Option {
	return func(c *openConfig) { c.withLock = true }
}

func WithToolVersion(v string) Option {
	return func(c *openConfig) { c.toolVersion = v }
}

// Repository owns one repository directory on disk: MetadataFile,
// MigrationEngine, IssueStore, and optionally a Locker-guarded session
// and a SqlAdapter-backed secondary index.
type Repository struct {
	dir    string
	store  *store.Store
	sql    *sqladapter.Adapter
	lock   *locker.Lock
	config openConfig
}

// Open ensures dir exists, migrates its on-disk schema if needed,
// loads the IssueStore, and wires in whichever optional components
// opts request.
func Open(ctx context.Context, dir string, nowUnix int64, opts ...Option) (*Repository, error) {
	cfg := openConfig{
		backupKeepCount: migrate.DefaultBackupKeepCount,
		toolVersion:     "dev",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("bzcore: creating repository directory: %w", err)
	}

	var lock *locker.Lock
	if cfg.withLock {
		var metrics lockmetrics.Metrics
		l, err := locker.Acquire(ctx, dir, &metrics)
		if err != nil {
			return nil, fmt.Errorf("bzcore: acquiring lock: %w", err)
		}
		lock = l
	}

	if _, err := migrate.MigrateIfNeeded(dir, cfg.toolVersion, nowUnix); err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("bzcore: migrating repository: %w", err)
	}
	if err := migrate.CleanupBackups(dir, cfg.backupKeepCount); err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("bzcore: cleaning up migration backups: %w", err)
	}

	if _, err := metadatafile.Read(dir); err != nil {
		if !errors.Is(err, metadatafile.ErrNotFound) {
			releaseLock(lock)
			return nil, fmt.Errorf("bzcore: reading metadata: %w", err)
		}
		meta := types.DefaultMetadata(fmt.Sprintf("%d", nowUnix), cfg.toolVersion)
		if err := metadatafile.Write(dir, meta, nowUnix); err != nil {
			releaseLock(lock)
			return nil, fmt.Errorf("bzcore: initializing metadata: %w", err)
		}
	}

	issuesPath := filepath.Join(dir, issuesFileName)
	s := store.New(issuesPath)
	exists, err := jsonl.Exists(issuesPath)
	if err != nil {
		releaseLock(lock)
		return nil, fmt.Errorf("bzcore: checking for issues file: %w", err)
	}
	if exists {
		if err := s.LoadFromFile(); err != nil {
			releaseLock(lock)
			return nil, fmt.Errorf("bzcore: loading issues: %w", err)
		}
	}

	var adapter *sqladapter.Adapter
	if cfg.withSQLIndex {
		a, err := sqladapter.Open(filepath.Join(dir, indexFileName))
		if err != nil {
			releaseLock(lock)
			return nil, fmt.Errorf("bzcore: opening sql index: %w", err)
		}
		if err := sqladapter.EnsureSchema(ctx, a); err != nil {
			a.Close()
			releaseLock(lock)
			return nil, fmt.Errorf("bzcore: preparing sql index schema: %w", err)
		}
		adapter = a
	}

	return &Repository{dir: dir, store: s, sql: adapter, lock: lock, config: cfg}, nil
}

func releaseLock(lock *locker.Lock) {
	if lock != nil {
		lock.Release()
	}
}

// Store returns the repository's IssueStore.
func (r *Repository) Store() *store.Store {
	return r.store
}

// Flush saves the IssueStore to its JSONL file and, if a SQL index is
// attached, re-syncs every currently-dirty issue into it before the
// save clears the dirty set.
func (r *Repository) Flush(ctx context.Context, nowUnix int64) error {
	if r.sql != nil {
		for _, id := range r.store.GetDirtyIds() {
			issue, ok := r.store.GetRef(id)
			if !ok {
				continue
			}
			if err := sqladapter.SyncIssue(ctx, r.sql, issue); err != nil {
				return fmt.Errorf("bzcore: syncing %s to sql index: %w", id, err)
			}
		}
	}
	if err := r.store.SaveToFile(nowUnix); err != nil {
		return fmt.Errorf("bzcore: flushing issues: %w", err)
	}
	return nil
}

// Close releases the lock (if held) and closes the SQL index handle
// (if attached).
func (r *Repository) Close() error {
	var errs []error
	if r.sql != nil {
		if err := r.sql.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.lock != nil {
		if err := r.lock.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
