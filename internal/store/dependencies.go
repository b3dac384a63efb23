package store

import (
	"errors"
	"fmt"

	"github.com/bzstore/bzcore/internal/types"
)

var ErrDuplicateDependency = errors.New("store: dependency already exists")

// AddDependency appends dep to the issue's dependency list, failing
// ErrDuplicateDependency if the (issue_id, depends_on_id, dep_type)
// triple already exists.
func (s *Store) AddDependency(issueID string, dep types.Dependency) error {
	issue, ok := s.GetRef(issueID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, issueID)
	}
	for _, existing := range issue.Dependencies {
		if existing.SameKey(dep) {
			return fmt.Errorf("%w: %s -> %s (%s)", ErrDuplicateDependency, dep.IssueID, dep.DependsOnID, dep.Type.String())
		}
	}
	issue.Dependencies = append(issue.Dependencies, dep.Clone())
	s.markDirty(issueID, issue.UpdatedAt)
	return nil
}

// RemoveDependency removes the dependency matching dependsOnID and
// depType, preserving the order of the rest. No-op if absent.
func (s *Store) RemoveDependency(issueID, dependsOnID string, depType types.DependencyType) error {
	issue, ok := s.GetRef(issueID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, issueID)
	}
	for i, d := range issue.Dependencies {
		if d.DependsOnID == dependsOnID && d.Type.Equal(depType) {
			issue.Dependencies = append(issue.Dependencies[:i], issue.Dependencies[i+1:]...)
			s.markDirty(issueID, issue.UpdatedAt)
			return nil
		}
	}
	return nil
}

// GetDependencies returns an owned copy of the issue's dependency list.
func (s *Store) GetDependencies(issueID string) ([]types.Dependency, error) {
	issue, ok := s.GetRef(issueID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, issueID)
	}
	out := make([]types.Dependency, len(issue.Dependencies))
	copy(out, issue.Dependencies)
	return out, nil
}
