package session

import (
	"log/slog"

	"mend/githist"
)

// undoSnapshot is a full copy of the three mutable overlays. Whole-state
// snapshots keep heterogeneous mutations (edit, delete, reorder) uniformly
// reversible; overlay sizes are bounded by the loaded commit count.
type undoSnapshot struct {
	order         []githist.CommitID
	modifications map[githist.CommitID]*githist.Modifications
	deleted       map[githist.CommitID]struct{}
	description   string
}

func (s *Session) snapshot(description string) undoSnapshot {
	order := make([]githist.CommitID, len(s.CurrentOrder))
	copy(order, s.CurrentOrder)

	mods := make(map[githist.CommitID]*githist.Modifications, len(s.Modifications))
	for id, m := range s.Modifications {
		mods[id] = m.Clone()
	}

	deleted := make(map[githist.CommitID]struct{}, len(s.Deleted))
	for id := range s.Deleted {
		deleted[id] = struct{}{}
	}

	return undoSnapshot{
		order:         order,
		modifications: mods,
		deleted:       deleted,
		description:   description,
	}
}

func (s *Session) restore(snap undoSnapshot) {
	s.CurrentOrder = snap.order
	s.Modifications = snap.modifications
	s.Deleted = snap.deleted
	s.rebuildCommits()
}

// SaveUndo pushes the current state onto the undo stack. Every mutating
// operation calls this before it mutates. Pushing always clears the redo
// stack.
func (s *Session) SaveUndo(description string) {
	s.undoStack = append(s.undoStack, s.snapshot(description))
	s.redoStack = nil
}

// Undo reverts the most recent mutation. Returns the operation description
// and false when the stack is empty.
func (s *Session) Undo() (string, bool) {
	if len(s.undoStack) == 0 {
		return "", false
	}
	snap := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]

	s.redoStack = append(s.redoStack, s.snapshot(snap.description))
	s.restore(snap)

	slog.Debug("undo", "description", snap.description, "undo_depth", len(s.undoStack))
	return snap.description, true
}

// Redo re-applies the most recently undone mutation.
func (s *Session) Redo() (string, bool) {
	if len(s.redoStack) == 0 {
		return "", false
	}
	snap := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]

	s.undoStack = append(s.undoStack, s.snapshot(snap.description))
	s.restore(snap)

	slog.Debug("redo", "description", snap.description, "redo_depth", len(s.redoStack))
	return snap.description, true
}

// CanUndo reports whether an undo is available.
func (s *Session) CanUndo() bool {
	return len(s.undoStack) > 0
}

// CanRedo reports whether a redo is available.
func (s *Session) CanRedo() bool {
	return len(s.redoStack) > 0
}

// rebuildCommits reorders the working commit list to match CurrentOrder.
// Commits missing from the order are dropped from the live list.
func (s *Session) rebuildCommits() {
	byID := make(map[githist.CommitID]githist.CommitData, len(s.Commits))
	for i := range s.Commits {
		byID[s.Commits[i].ID] = s.Commits[i]
	}

	rebuilt := make([]githist.CommitData, 0, len(s.CurrentOrder))
	for _, id := range s.CurrentOrder {
		if c, ok := byID[id]; ok {
			rebuilt = append(rebuilt, c)
		}
	}
	s.Commits = rebuilt

	if s.Cursor >= len(s.Commits) {
		s.Cursor = max(len(s.Commits)-1, 0)
	}
}
