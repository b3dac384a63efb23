package store

import (
	"sort"
	"strings"

	"github.com/bzstore/bzcore/internal/types"
)

type scoredIssue struct {
	issue *types.Issue
	score int
}

func similarityScore(target, candidate string) int {
	score := 0
	switch {
	case strings.HasPrefix(candidate, target):
		score += 100
	case strings.HasPrefix(target, candidate):
		score += 80
	}
	score += 5 * commonPrefixLen(target, candidate)
	if strings.Contains(candidate, target) {
		score += 30
	}
	if abs(len(target)-len(candidate)) <= 2 {
		score += 10
	}
	return score
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// FindSimilarIds returns the top maxCount non-tombstoned issues whose
// id scores above zero against target, highest score first, owned
// copies. Ties preserve store iteration order.
func (s *Store) FindSimilarIds(target string, maxCount int) []*types.Issue {
	candidates := make([]scoredIssue, 0, len(s.issues))
	for _, issue := range s.issues {
		if issue.Status.IsTombstone() {
			continue
		}
		score := similarityScore(target, issue.ID)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, scoredIssue{issue: issue, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if maxCount < len(candidates) {
		candidates = candidates[:maxCount]
	}

	out := make([]*types.Issue, len(candidates))
	for i, c := range candidates {
		out[i] = c.issue.Clone()
	}
	return out
}
