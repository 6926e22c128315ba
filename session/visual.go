package session

import "mend/githist"

// EnterVisual starts visual selection anchored at the cursor cell. Calling
// it again with the same kind exits; a different kind re-anchors.
func (s *Session) EnterVisual(kind VisualKind) {
	if v, ok := s.Mode.(VisualMode); ok {
		if v.Kind == kind {
			s.Mode = NormalMode{}
			return
		}
	}
	s.Mode = VisualMode{
		AnchorRow: s.Cursor,
		AnchorCol: int(s.ColumnIndex),
		Kind:      kind,
	}
}

// ExitVisual leaves visual mode without capturing anything.
func (s *Session) ExitVisual() {
	if _, ok := s.Mode.(VisualMode); ok {
		s.Mode = NormalMode{}
	}
}

// VisualRange returns the normalized selection rectangle as
// (startRow, startCol, endRow, endCol). ok is false outside visual mode.
func (s *Session) VisualRange() (startRow, startCol, endRow, endCol int, ok bool) {
	v, isVisual := s.Mode.(VisualMode)
	if !isVisual {
		return 0, 0, 0, 0, false
	}
	startRow = min(v.AnchorRow, s.Cursor)
	endRow = max(v.AnchorRow, s.Cursor)
	startCol = min(v.AnchorCol, int(s.ColumnIndex))
	endCol = max(v.AnchorCol, int(s.ColumnIndex))
	return startRow, startCol, endRow, endCol, true
}

// InVisualSelection reports whether a cell falls inside the selection.
// Line-wise selection covers whole rows; block-wise requires the column to
// be inside the rectangle too.
func (s *Session) InVisualSelection(row, col int) bool {
	v, ok := s.Mode.(VisualMode)
	if !ok {
		return false
	}
	startRow, startCol, endRow, endCol, _ := s.VisualRange()
	if row < startRow || row > endRow {
		return false
	}
	if v.Kind == VisualLine {
		return true
	}
	return col >= startCol && col <= endCol
}

// RowInVisualSelection reports whether a row intersects the selection.
func (s *Session) RowInVisualSelection(row int) bool {
	startRow, _, endRow, _, ok := s.VisualRange()
	return ok && row >= startRow && row <= endRow
}

// VisualSelectionCount returns how many rows the selection covers.
func (s *Session) VisualSelectionCount() int {
	startRow, _, endRow, _, ok := s.VisualRange()
	if !ok {
		return 0
	}
	return endRow - startRow + 1
}

// VisualRows returns the commit ids of the selected rows in display order.
func (s *Session) VisualRows() []githist.CommitID {
	startRow, _, endRow, _, ok := s.VisualRange()
	if !ok {
		return nil
	}
	var ids []githist.CommitID
	for row := startRow; row <= endRow; row++ {
		if c, visible := s.VisibleCommit(row); visible {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// ToggleVisualSelection toggles the checkbox on each covered row without
// leaving visual mode.
func (s *Session) ToggleVisualSelection() {
	for _, id := range s.VisualRows() {
		if _, ok := s.Selected[id]; ok {
			delete(s.Selected, id)
		} else {
			s.Selected[id] = struct{}{}
		}
	}
}

// CaptureVisualEditTargets stores the selected rows as the targets for the
// next edit and drops back to normal mode. Returns how many were captured.
func (s *Session) CaptureVisualEditTargets() int {
	ids := s.VisualRows()
	if ids == nil {
		return 0
	}
	s.VisualEditTargets = ids
	s.Mode = NormalMode{}
	return len(ids)
}

// ClearVisualEditTargets forgets captured targets once an edit completes or
// is cancelled.
func (s *Session) ClearVisualEditTargets() {
	s.VisualEditTargets = nil
}
