// Package doctor runs read-only (or fix=true repairable) consistency
// checks over a loaded store: dangling dependency references,
// duplicate labels, and out-of-order comment timestamps.
package doctor

import (
	"fmt"

	"github.com/bzstore/bzcore/internal/store"
	"github.com/bzstore/bzcore/internal/types"
)

// FindingKind names the category of a consistency problem.
type FindingKind string

const (
	FindingDanglingDependency FindingKind = "dangling_dependency"
	FindingDuplicateLabel     FindingKind = "duplicate_label"
	FindingCommentOutOfOrder  FindingKind = "comment_out_of_order"
)

// Finding describes one consistency problem found on IssueID.
type Finding struct {
	Kind    FindingKind
	IssueID string
	Detail  string
	Fixed   bool
}

// Check walks every issue in s, including tombstones, and reports
// findings. When fix is true, repairable findings (dangling
// dependency, duplicate label) are corrected in place and the
// affected issue marked dirty; comment ordering is reported only,
// since there is no principled way to pick the "correct" timestamp.
func Check(s *store.Store, fix bool) ([]Finding, error) {
	var findings []Finding

	all := s.List(store.Filters{IncludeTombstones: true, OrderBy: store.OrderByCreatedAt})
	for _, issue := range all {
		findings = append(findings, checkDependencies(s, issue, fix)...)
		findings = append(findings, checkDuplicateLabels(s, issue, fix)...)
		findings = append(findings, checkCommentOrder(issue)...)
	}
	return findings, nil
}

func checkDependencies(s *store.Store, issue *types.Issue, fix bool) []Finding {
	var findings []Finding
	for _, dep := range issue.Dependencies {
		if s.Exists(dep.DependsOnID) {
			continue
		}
		f := Finding{
			Kind:    FindingDanglingDependency,
			IssueID: issue.ID,
			Detail:  fmt.Sprintf("depends_on_id %q does not exist", dep.DependsOnID),
		}
		if fix {
			if err := s.RemoveDependency(issue.ID, dep.DependsOnID, dep.Type); err == nil {
				f.Fixed = true
			}
		}
		findings = append(findings, f)
	}
	return findings
}

func checkDuplicateLabels(s *store.Store, issue *types.Issue, fix bool) []Finding {
	var findings []Finding
	seen := make(map[string]int, len(issue.Labels))
	for _, label := range issue.Labels {
		seen[label]++
	}
	for label, count := range seen {
		if count <= 1 {
			continue
		}
		f := Finding{
			Kind:    FindingDuplicateLabel,
			IssueID: issue.ID,
			Detail:  fmt.Sprintf("label %q appears %d times", label, count),
		}
		if fix {
			// RemoveLabel removes one matching occurrence per call; drain
			// every copy, then re-add once to collapse to a single label.
			for i := 0; i < count; i++ {
				s.RemoveLabel(issue.ID, label)
			}
			if err := s.AddLabel(issue.ID, label); err == nil {
				f.Fixed = true
			}
		}
		findings = append(findings, f)
	}
	return findings
}

func checkCommentOrder(issue *types.Issue) []Finding {
	var findings []Finding
	for i := 1; i < len(issue.Comments); i++ {
		if issue.Comments[i].CreatedAt < issue.Comments[i-1].CreatedAt {
			findings = append(findings, Finding{
				Kind:    FindingCommentOutOfOrder,
				IssueID: issue.ID,
				Detail:  fmt.Sprintf("comment %d created_at precedes comment %d", issue.Comments[i].ID, issue.Comments[i-1].ID),
			})
		}
	}
	return findings
}
