package session

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mend/githist"
)

func testID(b byte) githist.CommitID {
	var h plumbing.Hash
	h[0] = b
	return githist.CommitID(h)
}

func testCommit(id byte, summary string) githist.CommitData {
	cid := testID(id)
	return githist.CommitData{
		ID:            cid,
		ShortHash:     cid.String(),
		Author:        githist.Person{Name: "Test Author", Email: "test@example.com"},
		AuthorDate:    time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Committer:     githist.Person{Name: "Test Author", Email: "test@example.com"},
		CommitterDate: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		Message:       summary,
		Summary:       summary,
	}
}

func newTestSession() *Session {
	commits := []githist.CommitData{
		testCommit(1, "First commit"),
		testCommit(2, "Second commit"),
		testCommit(3, "Third commit"),
	}
	return New(commits, "main", false)
}

func TestNew(t *testing.T) {
	s := newTestSession()

	assert.Len(t, s.Commits, 3)
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, "main", s.BranchName)
	assert.False(t, s.HasUpstream)
	assert.Empty(t, s.Modifications)
	assert.IsType(t, NormalMode{}, s.Mode)
	assert.True(t, s.SyncAuthorToCommitter)
	assert.False(t, s.IsDirty())
}

func TestCursorMovement(t *testing.T) {
	s := newTestSession()

	s.CursorDown()
	assert.Equal(t, 1, s.Cursor)
	s.CursorDown()
	assert.Equal(t, 2, s.Cursor)
	s.CursorDown()
	assert.Equal(t, 2, s.Cursor)

	s.CursorUp()
	assert.Equal(t, 1, s.Cursor)

	s.CursorTop()
	assert.Equal(t, 0, s.Cursor)
	s.CursorUp()
	assert.Equal(t, 0, s.Cursor)

	s.CursorBottom()
	assert.Equal(t, 2, s.Cursor)
}

func TestPageNavigation(t *testing.T) {
	s := newTestSession()

	s.PageDown(2)
	assert.Equal(t, 2, s.Cursor)

	s.PageUp(1)
	assert.Equal(t, 1, s.Cursor)

	s.PageDown(10)
	assert.Equal(t, 2, s.Cursor)

	s.PageUp(10)
	assert.Equal(t, 0, s.Cursor)
}

func TestColumnNavigationWraps(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, ColumnMark, s.ColumnIndex)

	s.ColumnRight()
	assert.Equal(t, ColumnHash, s.ColumnIndex)
	s.ColumnLeft()
	assert.Equal(t, ColumnMark, s.ColumnIndex)

	s.ColumnLeft()
	assert.Equal(t, ColumnMessage, s.ColumnIndex)
	s.ColumnRight()
	assert.Equal(t, ColumnMark, s.ColumnIndex)
}

func TestEditableColumnNavigation(t *testing.T) {
	s := newTestSession()

	// From the mark column the next editable stop skips the hash column.
	s.NextEditableColumn()
	assert.Equal(t, ColumnName, s.ColumnIndex)

	s.PrevEditableColumn()
	assert.Equal(t, ColumnMessage, s.ColumnIndex)
}

func TestCursorCommit(t *testing.T) {
	s := newTestSession()

	c, ok := s.CursorCommit()
	require.True(t, ok)
	assert.Equal(t, "First commit", c.Summary)

	s.CursorDown()
	c, ok = s.CursorCommit()
	require.True(t, ok)
	assert.Equal(t, "Second commit", c.Summary)

	id, ok := s.CursorCommitID()
	require.True(t, ok)
	assert.Equal(t, testID(2), id)
}

func TestToggleSelection(t *testing.T) {
	s := newTestSession()

	s.ToggleSelection()
	assert.True(t, s.IsSelected(testID(1)))

	s.ToggleSelection()
	assert.False(t, s.IsSelected(testID(1)))
}

func TestSelectAllDeselectAll(t *testing.T) {
	s := newTestSession()

	s.SelectAll()
	assert.Len(t, s.Selected, 3)
	for _, c := range s.Commits {
		assert.True(t, s.IsSelected(c.ID))
	}

	s.DeselectAll()
	assert.Empty(t, s.Selected)
}

func TestDirtyDetection(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.IsDirty())

	t.Run("modification makes dirty", func(t *testing.T) {
		s := newTestSession()
		name := "New Author"
		s.ModificationsFor(testID(1)).AuthorName = &name
		assert.True(t, s.IsDirty())
		assert.Equal(t, 1, s.ModifiedCount())
	})

	t.Run("empty overlay stays clean", func(t *testing.T) {
		s := newTestSession()
		s.ModificationsFor(testID(1))
		assert.False(t, s.IsDirty())
	})

	t.Run("deletion makes dirty", func(t *testing.T) {
		s := newTestSession()
		require.NoError(t, s.ToggleDeletion([]githist.CommitID{testID(1)}))
		assert.True(t, s.IsDirty())
	})

	t.Run("reorder makes dirty", func(t *testing.T) {
		s := newTestSession()
		s.Cursor = 1
		require.NoError(t, s.MoveCommitUp())
		assert.True(t, s.IsDirty())
	})
}

func TestDiscardChanges(t *testing.T) {
	s := newTestSession()

	name := "New Author"
	s.SaveUndo("Edit author")
	s.ModificationsFor(testID(1)).AuthorName = &name
	require.NoError(t, s.ToggleDeletion([]githist.CommitID{testID(2)}))
	s.Cursor = 1
	require.NoError(t, s.MoveCommitUp())
	require.True(t, s.IsDirty())

	s.DiscardChanges()

	assert.False(t, s.IsDirty())
	assert.Equal(t, 0, s.ModifiedCount())
	assert.Empty(t, s.Deleted)
	assert.Equal(t, s.OriginalOrder, s.CurrentOrder)
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Equal(t, "First commit", s.Commits[0].Summary)
}

func TestToggleDeletionGuard(t *testing.T) {
	s := newTestSession()

	// Deleting two of three is fine.
	err := s.ToggleDeletion([]githist.CommitID{testID(1), testID(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, s.DeletedCount())

	// Deleting the last survivor is rejected and changes nothing.
	err = s.ToggleDeletion([]githist.CommitID{testID(3)})
	assert.ErrorIs(t, err, ErrDeleteAll)
	assert.Equal(t, 2, s.DeletedCount())
	assert.False(t, s.IsDeleted(testID(3)))
}

func TestToggleDeletionAllAtOnce(t *testing.T) {
	s := newTestSession()

	err := s.ToggleDeletion([]githist.CommitID{testID(1), testID(2), testID(3)})
	assert.ErrorIs(t, err, ErrDeleteAll)
	assert.Empty(t, s.Deleted)
}

func TestToggleDeletionNormalizesMixedStates(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.ToggleDeletion([]githist.CommitID{testID(2)}))
	require.True(t, s.IsDeleted(testID(2)))

	// First target is not deleted, so the whole set gets marked.
	require.NoError(t, s.ToggleDeletion([]githist.CommitID{testID(1), testID(2)}))
	assert.True(t, s.IsDeleted(testID(1)))
	assert.True(t, s.IsDeleted(testID(2)))

	// First target is deleted, so the whole set gets restored.
	require.NoError(t, s.ToggleDeletion([]githist.CommitID{testID(1), testID(2)}))
	assert.Empty(t, s.Deleted)
}

func TestDeletionTargets(t *testing.T) {
	s := newTestSession()

	// Cursor only.
	assert.Equal(t, []githist.CommitID{testID(1)}, s.DeletionTargets())

	// Checkbox set wins over the cursor, in display order.
	s.Selected[testID(3)] = struct{}{}
	s.Selected[testID(2)] = struct{}{}
	assert.Equal(t, []githist.CommitID{testID(2), testID(3)}, s.DeletionTargets())
}

func TestCommitsToEditPriority(t *testing.T) {
	s := newTestSession()

	// Cursor alone.
	assert.Equal(t, []githist.CommitID{testID(1)}, s.CommitsToEdit())

	// Checkbox set beats the cursor.
	s.Selected[testID(2)] = struct{}{}
	assert.Equal(t, []githist.CommitID{testID(2)}, s.CommitsToEdit())

	// Visual targets beat both.
	s.VisualEditTargets = []githist.CommitID{testID(2), testID(3)}
	assert.Equal(t, []githist.CommitID{testID(2), testID(3)}, s.CommitsToEdit())
}

func TestMoveCommitUpDown(t *testing.T) {
	s := newTestSession()

	s.Cursor = 1
	require.NoError(t, s.MoveCommitUp())
	assert.Equal(t, testID(2), s.Commits[0].ID)
	assert.Equal(t, testID(1), s.Commits[1].ID)
	assert.Equal(t, []githist.CommitID{testID(2), testID(1), testID(3)}, s.CurrentOrder)
	assert.Equal(t, 0, s.Cursor)

	require.NoError(t, s.MoveCommitDown())
	assert.Equal(t, testID(1), s.Commits[0].ID)
	assert.Equal(t, 1, s.Cursor)
	assert.False(t, s.IsDirty())
}

func TestMoveCommitBounds(t *testing.T) {
	s := newTestSession()

	require.NoError(t, s.MoveCommitUp())
	assert.Equal(t, s.OriginalOrder, s.CurrentOrder)

	s.Cursor = 2
	require.NoError(t, s.MoveCommitDown())
	assert.Equal(t, s.OriginalOrder, s.CurrentOrder)
}

func TestMoveCommitBlockedByFilter(t *testing.T) {
	s := newTestSession()

	s.SearchQuery = "Second"
	s.ApplyFilter()

	err := s.MoveCommitUp()
	assert.ErrorIs(t, err, ErrReorderFiltered)
	assert.Equal(t, s.OriginalOrder, s.CurrentOrder)
}

func TestMoveCommitBlockedForMerge(t *testing.T) {
	merge := testCommit(4, "Merge branch")
	merge.ParentIDs = []githist.CommitID{testID(1), testID(2)}
	merge.IsMerge = true
	s := New([]githist.CommitData{merge, testCommit(1, "First")}, "main", false)

	err := s.MoveCommitDown()
	assert.ErrorIs(t, err, ErrReorderMerge)
}

func TestApplyFilter(t *testing.T) {
	s := newTestSession()

	s.SearchQuery = "Second"
	s.ApplyFilter()

	require.True(t, s.FilterActive())
	assert.Equal(t, 1, s.VisibleCount())
	c, ok := s.VisibleCommit(0)
	require.True(t, ok)
	assert.Equal(t, "Second commit", c.Summary)

	s.ClearFilter()
	assert.False(t, s.FilterActive())
	assert.Equal(t, 3, s.VisibleCount())
}

func TestApplyFilterCaseInsensitive(t *testing.T) {
	s := newTestSession()

	s.SearchQuery = "SECOND"
	s.ApplyFilter()
	assert.Equal(t, 1, s.VisibleCount())
}

func TestApplyFilterMatchesHashAndEmail(t *testing.T) {
	s := newTestSession()

	s.SearchQuery = s.Commits[2].ShortHash
	s.ApplyFilter()
	assert.Equal(t, 1, s.VisibleCount())

	s.SearchQuery = "test@example.com"
	s.ApplyFilter()
	assert.Equal(t, 3, s.VisibleCount())
}

func TestApplyFilterNoMatchesShowsAll(t *testing.T) {
	s := newTestSession()

	s.SearchQuery = "nonexistent"
	s.ApplyFilter()

	assert.False(t, s.FilterActive())
	assert.Equal(t, 3, s.VisibleCount())
}

func TestResetBaseline(t *testing.T) {
	s := newTestSession()
	name := "New Author"
	s.SaveUndo("Edit author")
	s.ModificationsFor(testID(1)).AuthorName = &name
	require.True(t, s.IsDirty())

	rewritten := []githist.CommitData{
		testCommit(5, "Rewritten tip"),
		testCommit(1, "First commit"),
	}
	s.ResetBaseline(rewritten)

	assert.False(t, s.IsDirty())
	assert.Len(t, s.Commits, 2)
	assert.Equal(t, []githist.CommitID{testID(5), testID(1)}, s.OriginalOrder)
	assert.Equal(t, s.OriginalOrder, s.CurrentOrder)
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
	assert.Less(t, s.Cursor, len(s.Commits))
}

func TestStatusMessages(t *testing.T) {
	s := newTestSession()

	s.SetError("boom")
	assert.Equal(t, "boom", s.ErrorMessage)
	assert.Empty(t, s.SuccessMessage)

	s.SetSuccess("done")
	assert.Equal(t, "done", s.SuccessMessage)
	assert.Empty(t, s.ErrorMessage)

	s.ClearMessages()
	assert.Empty(t, s.ErrorMessage)
	assert.Empty(t, s.SuccessMessage)
}

func TestScrollFollowsCursor(t *testing.T) {
	var commits []githist.CommitData
	for i := byte(1); i <= 30; i++ {
		commits = append(commits, testCommit(i, "Commit"))
	}
	s := New(commits, "main", false)

	s.Cursor = 25
	s.UpdateScrollForHeight(10)
	assert.Equal(t, 16, s.ScrollOffset)

	s.Cursor = 3
	s.UpdateScrollForHeight(10)
	assert.Equal(t, 3, s.ScrollOffset)
}
