package store

import (
	"fmt"

	"github.com/bzstore/bzcore/internal/types"
)

// IssueUpdate carries the subset of Issue fields a caller wants to
// change. A nil field is left untouched; CreatedAt, Labels,
// Dependencies, and Comments are not updatable through this path (use
// the dedicated label/dependency/comment methods instead).
type IssueUpdate struct {
	Title               *string
	Description         *string
	Design              *string
	AcceptanceCriteria  *string
	Notes               *string
	CloseReason         *string
	ExternalRef         *string
	SourceSystem        *string
	ContentHash         *string
	Assignee            *string
	Owner               *string
	Status              *types.Status
	Priority            *types.Priority
	IssueType           *types.IssueType
	EstimatedMinutes    **int
	ClosedAt            **int64
	DueAt               **int64
	DeferUntil          **int64
	Pinned              *bool
	IsTemplate          *bool
}

// Update applies every non-nil field of u to a candidate copy of the
// stored issue, validates the result, and only then commits it,
// bumping UpdatedAt to now and marking the issue dirty. The stored
// issue is left untouched if the candidate fails validation.
func (s *Store) Update(id string, u IssueUpdate, nowUnix int64) error {
	idx, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	issue := s.issues[idx].Clone()

	if u.Title != nil {
		issue.Title = *u.Title
	}
	if u.Description != nil {
		issue.Description = *u.Description
	}
	if u.Design != nil {
		issue.Design = *u.Design
	}
	if u.AcceptanceCriteria != nil {
		issue.AcceptanceCriteria = *u.AcceptanceCriteria
	}
	if u.Notes != nil {
		issue.Notes = *u.Notes
	}
	if u.CloseReason != nil {
		issue.CloseReason = *u.CloseReason
	}
	if u.ExternalRef != nil {
		issue.ExternalRef = *u.ExternalRef
	}
	if u.SourceSystem != nil {
		issue.SourceSystem = *u.SourceSystem
	}
	if u.ContentHash != nil {
		issue.ContentHash = *u.ContentHash
	}
	if u.Assignee != nil {
		issue.Assignee = *u.Assignee
	}
	if u.Owner != nil {
		issue.Owner = *u.Owner
	}
	if u.Status != nil {
		issue.Status = *u.Status
	}
	if u.Priority != nil {
		issue.Priority = *u.Priority
	}
	if u.IssueType != nil {
		issue.IssueType = *u.IssueType
	}
	if u.EstimatedMinutes != nil {
		issue.EstimatedMinutes = *u.EstimatedMinutes
	}
	if u.ClosedAt != nil {
		issue.ClosedAt = *u.ClosedAt
	}
	if u.DueAt != nil {
		issue.DueAt = *u.DueAt
	}
	if u.DeferUntil != nil {
		issue.DeferUntil = *u.DeferUntil
	}
	if u.Pinned != nil {
		issue.Pinned = *u.Pinned
	}
	if u.IsTemplate != nil {
		issue.IsTemplate = *u.IsTemplate
	}

	issue.UpdatedAt = nowUnix
	if err := issue.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIssue, err)
	}

	s.issues[idx] = issue
	s.markDirty(id, nowUnix)
	return nil
}

// Delete soft-deletes by transitioning status to tombstone; the
// record is never physically removed. ClosedAt is cleared since it is
// only valid alongside StatusTagClosed.
func (s *Store) Delete(id string, nowUnix int64) error {
	tombstone := types.StatusTombstone
	var clearedClosedAt *int64
	return s.Update(id, IssueUpdate{Status: &tombstone, ClosedAt: &clearedClosedAt}, nowUnix)
}
