package store

import (
	"fmt"

	"github.com/bzstore/bzcore/internal/types"
)

// AddComment deep-clones and appends comment to the issue's comment
// sequence.
func (s *Store) AddComment(id string, comment types.Comment) error {
	issue, ok := s.GetRef(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	issue.Comments = append(issue.Comments, comment.Clone())
	s.markDirty(id, issue.UpdatedAt)
	return nil
}

// GetComments returns an owned copy of the issue's comment sequence.
func (s *Store) GetComments(id string) ([]types.Comment, error) {
	issue, ok := s.GetRef(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	out := make([]types.Comment, len(issue.Comments))
	copy(out, issue.Comments)
	return out, nil
}
