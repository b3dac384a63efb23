package store

import (
	"sort"

	"github.com/bzstore/bzcore/internal/types"
)

// OrderField selects the sort key for List.
type OrderField string

const (
	OrderByCreatedAt OrderField = "created_at"
	OrderByUpdatedAt OrderField = "updated_at"
	OrderByPriority  OrderField = "priority"
)

// Filters narrows List's result set. A nil pointer field means
// "unconstrained". OrderDesc defaults to true (see NewFilters).
type Filters struct {
	Status            *types.Status
	Priority          *types.Priority
	IssueType         *types.IssueType
	Assignee          *string
	Label             *string
	IncludeTombstones bool
	Limit             *int
	Offset            int
	OrderBy           OrderField
	OrderDesc         bool
}

// NewFilters returns Filters with the spec defaults: tombstones
// excluded, descending order by created_at.
func NewFilters() Filters {
	return Filters{OrderBy: OrderByCreatedAt, OrderDesc: true}
}

func matches(issue *types.Issue, f Filters) bool {
	if issue.Status.IsTombstone() && !f.IncludeTombstones {
		return false
	}
	if f.Status != nil && !issue.Status.Equal(*f.Status) {
		return false
	}
	if f.IssueType != nil && !issue.IssueType.Equal(*f.IssueType) {
		return false
	}
	if f.Priority != nil && issue.Priority != *f.Priority {
		return false
	}
	if f.Assignee != nil && issue.Assignee != *f.Assignee {
		return false
	}
	if f.Label != nil && !issue.HasLabel(*f.Label) {
		return false
	}
	return true
}

func orderKey(issue *types.Issue, field OrderField) int64 {
	switch field {
	case OrderByUpdatedAt:
		return issue.UpdatedAt
	case OrderByPriority:
		return int64(issue.Priority)
	default:
		return issue.CreatedAt
	}
}

// List returns owned copies of every issue matching f, ordered and
// paged per f. The sort is stable, so issues with equal keys keep
// their insertion order.
func (s *Store) List(f Filters) []*types.Issue {
	matched := make([]*types.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		if matches(issue, f) {
			matched = append(matched, issue)
		}
	}

	field := f.OrderBy
	if field == "" {
		field = OrderByCreatedAt
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ki, kj := orderKey(matched[i], field), orderKey(matched[j], field)
		if f.OrderDesc {
			return ki > kj
		}
		return ki < kj
	})

	if f.Offset > 0 {
		if f.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[f.Offset:]
		}
	}
	if f.Limit != nil && *f.Limit < len(matched) {
		matched = matched[:*f.Limit]
	}

	out := make([]*types.Issue, len(matched))
	for i, issue := range matched {
		out[i] = issue.Clone()
	}
	return out
}

// Count returns per-group counts, always excluding tombstones. A nil
// groupBy returns a single "" key with the total count.
func (s *Store) Count(groupBy func(*types.Issue) string) map[string]int {
	counts := make(map[string]int)
	for _, issue := range s.issues {
		if issue.Status.IsTombstone() {
			continue
		}
		key := ""
		if groupBy != nil {
			key = groupBy(issue)
		}
		counts[key]++
	}
	return counts
}
