// Package session owns the in-memory edit state for one history editing
// run: the loaded commits, the pending modification overlays, deletion
// marks, ordering, selection, and the undo/redo stacks. Nothing in this
// package touches the repository; all changes stay buffered until the
// caller hands them to the rewrite engine.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mend/githist"
)

var (
	// ErrDeleteAll is returned when a deletion toggle would leave no
	// surviving commit.
	ErrDeleteAll = errors.New("cannot delete all commits")

	// ErrReorderFiltered is returned when reordering is attempted while a
	// search filter is active.
	ErrReorderFiltered = errors.New("cannot reorder while a filter is active")

	// ErrReorderMerge is returned when the cursor commit is a merge commit.
	ErrReorderMerge = errors.New("cannot reorder merge commits")
)

// Session is the central mutable state, exclusively owned by the event loop.
type Session struct {
	// Commits holds the loaded commits in current display order.
	Commits []githist.CommitData

	// OriginalOrder is the immutable baseline from load time.
	OriginalOrder []githist.CommitID

	// CurrentOrder reflects user reordering. Always a permutation of
	// OriginalOrder; deletion hides commits without removing them here.
	CurrentOrder []githist.CommitID

	// Modifications holds pending per-commit field overlays.
	Modifications map[githist.CommitID]*githist.Modifications

	// Selected is the checkbox multi-select set.
	Selected map[githist.CommitID]struct{}

	// Deleted marks commits for removal on apply.
	Deleted map[githist.CommitID]struct{}

	// Cursor is the focused row in the visible commit list.
	Cursor int

	// ColumnIndex is the focused table column.
	ColumnIndex Column

	// Mode is the active modal state.
	Mode Mode

	// SearchQuery is the current filter string.
	SearchQuery string

	// filteredIndices indexes Commits when a filter is active; nil means
	// show all.
	filteredIndices []int

	undoStack []undoSnapshot
	redoStack []undoSnapshot

	// ScrollOffset is the first visible table row.
	ScrollOffset int

	// BranchName is the branch being edited.
	BranchName string

	// HasUpstream gates the force-push warning.
	HasUpstream bool

	// ErrorMessage and SuccessMessage are transient status-bar messages,
	// cleared on the next action.
	ErrorMessage   string
	SuccessMessage string

	// VisualEditTargets holds commits captured by a visual-mode edit
	// request, consumed by the next edit.
	VisualEditTargets []githist.CommitID

	// DetailScroll is the detail pane scroll offset.
	DetailScroll int

	// HelpScroll is the help screen scroll offset.
	HelpScroll int

	// SyncAuthorToCommitter mirrors author field edits into the matching
	// committer field.
	SyncAuthorToCommitter bool
}

// New builds a session around freshly loaded commits.
func New(commits []githist.CommitData, branchName string, hasUpstream bool) *Session {
	order := make([]githist.CommitID, len(commits))
	for i := range commits {
		order[i] = commits[i].ID
	}
	current := make([]githist.CommitID, len(order))
	copy(current, order)

	return &Session{
		Commits:               commits,
		OriginalOrder:         order,
		CurrentOrder:          current,
		Modifications:         make(map[githist.CommitID]*githist.Modifications),
		Selected:              make(map[githist.CommitID]struct{}),
		Deleted:               make(map[githist.CommitID]struct{}),
		Mode:                  NormalMode{},
		BranchName:            branchName,
		HasUpstream:           hasUpstream,
		SyncAuthorToCommitter: true,
	}
}

// VisibleCount returns how many commits the current filter shows.
func (s *Session) VisibleCount() int {
	if s.filteredIndices != nil {
		return len(s.filteredIndices)
	}
	return len(s.Commits)
}

// VisibleCommit returns the commit at a visible row.
func (s *Session) VisibleCommit(row int) (*githist.CommitData, bool) {
	if s.filteredIndices != nil {
		if row < 0 || row >= len(s.filteredIndices) {
			return nil, false
		}
		return &s.Commits[s.filteredIndices[row]], true
	}
	if row < 0 || row >= len(s.Commits) {
		return nil, false
	}
	return &s.Commits[row], true
}

// CursorCommit returns the commit under the cursor.
func (s *Session) CursorCommit() (*githist.CommitData, bool) {
	return s.VisibleCommit(s.Cursor)
}

// CursorCommitID returns the id of the commit under the cursor.
func (s *Session) CursorCommitID() (githist.CommitID, bool) {
	c, ok := s.CursorCommit()
	if !ok {
		return githist.CommitID{}, false
	}
	return c.ID, true
}

// ModificationsFor returns the overlay for a commit, creating it lazily.
func (s *Session) ModificationsFor(id githist.CommitID) *githist.Modifications {
	m, ok := s.Modifications[id]
	if !ok {
		m = &githist.Modifications{}
		s.Modifications[id] = m
	}
	return m
}

// IsModified reports whether a commit has any pending field edit.
func (s *Session) IsModified(id githist.CommitID) bool {
	return s.Modifications[id].HasModifications()
}

// IsSelected reports whether a commit is checkbox-selected.
func (s *Session) IsSelected(id githist.CommitID) bool {
	_, ok := s.Selected[id]
	return ok
}

// IsDeleted reports whether a commit is marked for deletion.
func (s *Session) IsDeleted(id githist.CommitID) bool {
	_, ok := s.Deleted[id]
	return ok
}

// ToggleSelection flips the checkbox on the cursor commit.
func (s *Session) ToggleSelection() {
	id, ok := s.CursorCommitID()
	if !ok {
		return
	}
	if s.IsSelected(id) {
		delete(s.Selected, id)
	} else {
		s.Selected[id] = struct{}{}
	}
}

// SelectRange checkbox-selects every visible row in [startRow, endRow].
func (s *Session) SelectRange(startRow, endRow int) {
	for row := startRow; row <= endRow; row++ {
		if c, ok := s.VisibleCommit(row); ok {
			s.Selected[c.ID] = struct{}{}
		}
	}
}

// SelectAll checkbox-selects every visible commit.
func (s *Session) SelectAll() {
	s.SelectRange(0, s.VisibleCount()-1)
}

// DeselectAll clears the checkbox set.
func (s *Session) DeselectAll() {
	s.Selected = make(map[githist.CommitID]struct{})
}

// CursorUp moves the cursor one row up.
func (s *Session) CursorUp() {
	if s.Cursor > 0 {
		s.Cursor--
		s.DetailScroll = 0
	}
}

// CursorDown moves the cursor one row down.
func (s *Session) CursorDown() {
	if s.Cursor < s.VisibleCount()-1 {
		s.Cursor++
		s.DetailScroll = 0
	}
}

// CursorTop jumps to the first row.
func (s *Session) CursorTop() {
	s.Cursor = 0
	s.ScrollOffset = 0
	s.DetailScroll = 0
}

// CursorBottom jumps to the last visible row.
func (s *Session) CursorBottom() {
	s.Cursor = max(s.VisibleCount()-1, 0)
	s.DetailScroll = 0
}

// PageUp moves the cursor up by a page.
func (s *Session) PageUp(pageSize int) {
	s.Cursor = max(s.Cursor-pageSize, 0)
	s.DetailScroll = 0
}

// PageDown moves the cursor down by a page.
func (s *Session) PageDown(pageSize int) {
	s.Cursor = min(s.Cursor+pageSize, max(s.VisibleCount()-1, 0))
	s.DetailScroll = 0
}

// UpdateScrollForHeight keeps the cursor inside the rendered table window.
func (s *Session) UpdateScrollForHeight(height int) {
	if height <= 0 {
		return
	}
	if s.Cursor < s.ScrollOffset {
		s.ScrollOffset = s.Cursor
	} else if s.Cursor >= s.ScrollOffset+height {
		s.ScrollOffset = s.Cursor - height + 1
	}
}

// ColumnLeft moves column focus left, wrapping at the first column.
func (s *Session) ColumnLeft() {
	if s.ColumnIndex > 0 {
		s.ColumnIndex--
	} else {
		s.ColumnIndex = NumColumns - 1
	}
}

// ColumnRight moves column focus right, wrapping at the last column.
func (s *Session) ColumnRight() {
	if s.ColumnIndex < NumColumns-1 {
		s.ColumnIndex++
	} else {
		s.ColumnIndex = 0
	}
}

// NextEditableColumn advances column focus to the next editable column.
func (s *Session) NextEditableColumn() {
	for range NumColumns {
		s.ColumnRight()
		if s.ColumnIndex.IsEditable() {
			return
		}
	}
}

// PrevEditableColumn moves column focus to the previous editable column.
func (s *Session) PrevEditableColumn() {
	for range NumColumns {
		s.ColumnLeft()
		if s.ColumnIndex.IsEditable() {
			return
		}
	}
}

// MoveCommitUp swaps the cursor commit with the one above it. Only a single
// non-merge commit can move, and never while a filter is active.
func (s *Session) MoveCommitUp() error {
	if err := s.canReorder(); err != nil {
		return err
	}
	if s.Cursor == 0 {
		return nil
	}
	s.SaveUndo("Reorder commits")
	i := s.Cursor
	s.CurrentOrder[i], s.CurrentOrder[i-1] = s.CurrentOrder[i-1], s.CurrentOrder[i]
	s.Commits[i], s.Commits[i-1] = s.Commits[i-1], s.Commits[i]
	s.Cursor--
	return nil
}

// MoveCommitDown swaps the cursor commit with the one below it.
func (s *Session) MoveCommitDown() error {
	if err := s.canReorder(); err != nil {
		return err
	}
	if s.Cursor >= len(s.Commits)-1 {
		return nil
	}
	s.SaveUndo("Reorder commits")
	i := s.Cursor
	s.CurrentOrder[i], s.CurrentOrder[i+1] = s.CurrentOrder[i+1], s.CurrentOrder[i]
	s.Commits[i], s.Commits[i+1] = s.Commits[i+1], s.Commits[i]
	s.Cursor++
	return nil
}

func (s *Session) canReorder() error {
	if s.filteredIndices != nil {
		return ErrReorderFiltered
	}
	if c, ok := s.CursorCommit(); ok && c.IsMerge {
		return ErrReorderMerge
	}
	return nil
}

// DeletionTargets resolves which commits the next deletion toggle applies
// to: the checkbox set if non-empty, else the cursor commit.
func (s *Session) DeletionTargets() []githist.CommitID {
	if len(s.Selected) > 0 {
		return s.orderedSelection()
	}
	if id, ok := s.CursorCommitID(); ok {
		return []githist.CommitID{id}
	}
	return nil
}

// ToggleDeletion flips the deletion mark on the target commits. The
// direction comes from the first target: mixed initial states are
// normalized to its opposite. Marking is rejected when it would delete
// every remaining commit.
func (s *Session) ToggleDeletion(targets []githist.CommitID) error {
	if len(targets) == 0 {
		return nil
	}

	willDelete := !s.IsDeleted(targets[0])
	if willDelete && len(targets) >= len(s.Commits)-len(s.Deleted) {
		return ErrDeleteAll
	}

	if willDelete {
		s.SaveUndo(countDesc("Delete", len(targets)))
	} else {
		s.SaveUndo(countDesc("Restore", len(targets)))
	}

	for _, id := range targets {
		if willDelete {
			s.Deleted[id] = struct{}{}
		} else {
			delete(s.Deleted, id)
		}
	}

	slog.Debug("toggled deletion",
		"count", len(targets),
		"deleting", willDelete,
		"total_deleted", len(s.Deleted))
	return nil
}

// CommitsToEdit resolves which commits the next edit applies to, in strict
// priority: visual capture, then the checkbox set, then the cursor commit.
func (s *Session) CommitsToEdit() []githist.CommitID {
	if s.VisualEditTargets != nil {
		out := make([]githist.CommitID, len(s.VisualEditTargets))
		copy(out, s.VisualEditTargets)
		return out
	}
	if len(s.Selected) > 0 {
		return s.orderedSelection()
	}
	if id, ok := s.CursorCommitID(); ok {
		return []githist.CommitID{id}
	}
	return nil
}

// orderedSelection returns the checkbox set in current display order so
// multi-target operations behave deterministically.
func (s *Session) orderedSelection() []githist.CommitID {
	var out []githist.CommitID
	for _, id := range s.CurrentOrder {
		if s.IsSelected(id) {
			out = append(out, id)
		}
	}
	return out
}

// ApplyFilter recomputes the visible set from SearchQuery. Matching is a
// case-insensitive substring test over author name, email, message and
// short hash. An empty query, or one matching nothing, shows all commits.
func (s *Session) ApplyFilter() {
	if s.SearchQuery == "" {
		s.filteredIndices = nil
		return
	}

	query := strings.ToLower(s.SearchQuery)
	var indices []int
	for i := range s.Commits {
		c := &s.Commits[i]
		if strings.Contains(strings.ToLower(c.Author.Name), query) ||
			strings.Contains(strings.ToLower(c.Author.Email), query) ||
			strings.Contains(strings.ToLower(c.Message), query) ||
			strings.Contains(strings.ToLower(c.ShortHash), query) {
			indices = append(indices, i)
		}
	}

	s.filteredIndices = indices
	s.Cursor = 0
	s.ScrollOffset = 0
	slog.Debug("applied filter", "query", s.SearchQuery, "matches", len(indices))
}

// ClearFilter removes the search filter.
func (s *Session) ClearFilter() {
	s.SearchQuery = ""
	s.filteredIndices = nil
}

// FilterActive reports whether a search filter currently narrows the list.
func (s *Session) FilterActive() bool {
	return s.filteredIndices != nil
}

// IsDirty reports whether any pending change exists.
func (s *Session) IsDirty() bool {
	for _, m := range s.Modifications {
		if m.HasModifications() {
			return true
		}
	}
	if len(s.Deleted) > 0 {
		return true
	}
	return githist.OrderChanged(s.OriginalOrder, s.CurrentOrder)
}

// ModifiedCount returns how many commits carry pending field edits.
func (s *Session) ModifiedCount() int {
	return githist.CountModified(s.Modifications)
}

// DeletedCount returns how many commits are marked for deletion.
func (s *Session) DeletedCount() int {
	return len(s.Deleted)
}

// DiscardChanges drops every pending change and both undo stacks, restoring
// the original order.
func (s *Session) DiscardChanges() {
	s.Modifications = make(map[githist.CommitID]*githist.Modifications)
	s.Deleted = make(map[githist.CommitID]struct{})
	s.CurrentOrder = make([]githist.CommitID, len(s.OriginalOrder))
	copy(s.CurrentOrder, s.OriginalOrder)
	s.rebuildCommits()
	s.undoStack = nil
	s.redoStack = nil
}

// ResetBaseline replaces the session contents after a successful rewrite.
// The reloaded commits become the new clean state.
func (s *Session) ResetBaseline(commits []githist.CommitData) {
	order := make([]githist.CommitID, len(commits))
	for i := range commits {
		order[i] = commits[i].ID
	}
	current := make([]githist.CommitID, len(order))
	copy(current, order)

	s.Commits = commits
	s.OriginalOrder = order
	s.CurrentOrder = current
	s.Modifications = make(map[githist.CommitID]*githist.Modifications)
	s.Selected = make(map[githist.CommitID]struct{})
	s.Deleted = make(map[githist.CommitID]struct{})
	s.undoStack = nil
	s.redoStack = nil
	s.VisualEditTargets = nil
	s.ClearFilter()
	if s.Cursor >= len(commits) {
		s.Cursor = max(len(commits)-1, 0)
	}
}

// SetError shows a transient error message in the status bar.
func (s *Session) SetError(msg string) {
	s.ErrorMessage = msg
	s.SuccessMessage = ""
}

// SetSuccess shows a transient success message in the status bar.
func (s *Session) SetSuccess(msg string) {
	s.SuccessMessage = msg
	s.ErrorMessage = ""
}

// ClearMessages drops both status messages.
func (s *Session) ClearMessages() {
	s.ErrorMessage = ""
	s.SuccessMessage = ""
}

func countDesc(verb string, n int) string {
	if n == 1 {
		return verb + " 1 commit"
	}
	return fmt.Sprintf("%s %d commits", verb, n)
}
