package store

import "fmt"

// AddLabel appends label if not already present, preserving insertion
// order. No-op if the label is already on the issue.
func (s *Store) AddLabel(id, label string) error {
	issue, ok := s.GetRef(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if issue.HasLabel(label) {
		return nil
	}
	issue.Labels = append(issue.Labels, label)
	s.markDirty(id, issue.UpdatedAt)
	return nil
}

// RemoveLabel removes label if present, preserving the order of the
// remaining labels. No-op if absent.
func (s *Store) RemoveLabel(id, label string) error {
	issue, ok := s.GetRef(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	for i, l := range issue.Labels {
		if l == label {
			issue.Labels = append(issue.Labels[:i], issue.Labels[i+1:]...)
			s.markDirty(id, issue.UpdatedAt)
			return nil
		}
	}
	return nil
}
