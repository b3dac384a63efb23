// Package store holds the in-memory IssueStore: an ordered sequence of
// issues backed by a JSONL file, with id indexing, dirty tracking, and
// CRUD/filter/similarity operations layered on top. A Store is not
// safe for concurrent use; callers serialize access themselves (see
// the locker package for the cross-process half of that contract).
package store

import (
	"errors"
	"fmt"

	"github.com/bzstore/bzcore/internal/jsonl"
	"github.com/bzstore/bzcore/internal/types"
)

var (
	ErrDuplicateID  = errors.New("store: issue id already exists")
	ErrNotFound     = errors.New("store: issue not found")
	ErrInvalidIssue = errors.New("store: invalid issue")
)

// Store is the in-memory IssueStore bound to a single JSONL path.
type Store struct {
	path   string
	issues []*types.Issue
	index  map[string]int
	dirty  map[string]int64
}

// New returns an empty store bound to path. Call LoadFromFile to
// populate it from an existing file.
func New(path string) *Store {
	return &Store{
		path:  path,
		index: make(map[string]int),
		dirty: make(map[string]int64),
	}
}

// LoadFromFile reads path via the JSONL codec and replaces the store's
// contents. A malformed line aborts the load with its error, per the
// line-numbered parse-error policy of the JSONL codec; there is no
// partial load.
func (s *Store) LoadFromFile() error {
	issues, err := jsonl.ReadAll(s.path)
	if err != nil {
		return fmt.Errorf("store: load: %w", err)
	}

	s.issues = make([]*types.Issue, 0, len(issues))
	s.index = make(map[string]int, len(issues))
	for i, issue := range issues {
		s.issues = append(s.issues, issue)
		s.index[issue.ID] = i
	}
	s.dirty = make(map[string]int64)
	return nil
}

// SaveToFile writes the store's current contents via the JSONL codec
// and clears the dirty flag and dirty id set on success.
func (s *Store) SaveToFile(nowUnix int64) error {
	owned := make([]*types.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		owned = append(owned, issue.Clone())
	}
	if err := jsonl.WriteAll(s.path, owned, nowUnix); err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	s.dirty = make(map[string]int64)
	return nil
}

func (s *Store) markDirty(id string, nowUnix int64) {
	s.dirty[id] = nowUnix
}

// Insert adds a new issue, failing ErrDuplicateID if its id is
// already present or ErrInvalidIssue if it fails its own invariants.
func (s *Store) Insert(issue types.Issue) error {
	if _, exists := s.index[issue.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, issue.ID)
	}
	if err := issue.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIssue, err)
	}
	clone := issue.Clone()
	s.index[clone.ID] = len(s.issues)
	s.issues = append(s.issues, clone)
	s.markDirty(clone.ID, clone.UpdatedAt)
	return nil
}

// Get returns an owned deep clone of the issue with the given id.
func (s *Store) Get(id string) (*types.Issue, bool) {
	ref, ok := s.GetRef(id)
	if !ok {
		return nil, false
	}
	return ref.Clone(), true
}

// GetRef returns a non-owning pointer into store-managed memory.
// It is only valid for inspection before the next mutating call.
func (s *Store) GetRef(id string) (*types.Issue, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.issues[i], true
}

// Exists reports whether id is present (tombstoned or not).
func (s *Store) Exists(id string) bool {
	_, ok := s.index[id]
	return ok
}

// CountTotal returns the number of non-tombstoned issues.
func (s *Store) CountTotal() int {
	n := 0
	for _, issue := range s.issues {
		if !issue.Status.IsTombstone() {
			n++
		}
	}
	return n
}

// IsDirty reports whether the dirty set is non-empty: some id was
// mutated since the last SaveToFile (or since LoadFromFile/New) and
// has not since been removed by ClearDirty.
func (s *Store) IsDirty() bool {
	return len(s.dirty) > 0
}

// GetDirtyIds returns an owned snapshot of the ids with pending
// mutations.
func (s *Store) GetDirtyIds() []string {
	ids := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		ids = append(ids, id)
	}
	return ids
}

// ClearDirty removes a single id from the dirty set.
func (s *Store) ClearDirty(id string) {
	delete(s.dirty, id)
}
