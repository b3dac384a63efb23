package doctor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bzstore/bzcore/internal/store"
	"github.com/bzstore/bzcore/internal/types"
)

func newStoreWithIssue(t *testing.T, id string) *store.Store {
	t.Helper()
	s := store.New(filepath.Join(t.TempDir(), "issues.jsonl"))
	require.NoError(t, s.Insert(types.Issue{
		ID: id, Title: "t", Status: types.StatusOpen, IssueType: types.TypeTask,
		CreatedAt: 1000, UpdatedAt: 1000,
	}))
	return s
}

func TestCheckFindsDanglingDependency(t *testing.T) {
	s := newStoreWithIssue(t, "bd-1")
	require.NoError(t, s.AddDependency("bd-1", types.Dependency{
		IssueID: "bd-1", DependsOnID: "bd-missing", Type: types.DepTypeBlocks, CreatedAt: 1000,
	}))

	findings, err := Check(s, false)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, FindingDanglingDependency, findings[0].Kind)
	require.False(t, findings[0].Fixed)

	deps, _ := s.GetDependencies("bd-1")
	require.Len(t, deps, 1)
}

func TestCheckFixTrueRemovesDanglingDependency(t *testing.T) {
	s := newStoreWithIssue(t, "bd-1")
	require.NoError(t, s.AddDependency("bd-1", types.Dependency{
		IssueID: "bd-1", DependsOnID: "bd-missing", Type: types.DepTypeBlocks, CreatedAt: 1000,
	}))

	findings, err := Check(s, true)
	require.NoError(t, err)
	require.True(t, findings[0].Fixed)

	deps, _ := s.GetDependencies("bd-1")
	require.Empty(t, deps)
}

func TestCheckFindsNoIssuesOnCleanStore(t *testing.T) {
	s := newStoreWithIssue(t, "bd-1")
	findings, err := Check(s, false)
	require.NoError(t, err)
	require.Empty(t, findings)
}

func TestCheckFindsCommentOutOfOrder(t *testing.T) {
	s := newStoreWithIssue(t, "bd-1")
	require.NoError(t, s.AddComment("bd-1", types.Comment{ID: 1, Author: "a", Body: "first", CreatedAt: 2000}))
	require.NoError(t, s.AddComment("bd-1", types.Comment{ID: 2, Author: "a", Body: "second", CreatedAt: 1000}))

	findings, err := Check(s, false)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, FindingCommentOutOfOrder, findings[0].Kind)
	require.False(t, findings[0].Fixed)
}

func TestCheckIncludesTombstonedIssues(t *testing.T) {
	s := newStoreWithIssue(t, "bd-1")
	require.NoError(t, s.Delete("bd-1", 2000))
	require.NoError(t, s.AddDependency("bd-1", types.Dependency{
		IssueID: "bd-1", DependsOnID: "bd-missing", Type: types.DepTypeBlocks, CreatedAt: 1000,
	}))

	findings, err := Check(s, false)
	require.NoError(t, err)
	require.Len(t, findings, 1)
}
