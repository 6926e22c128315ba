package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mend/githist"
)

func TestEnterVisualTogglesOff(t *testing.T) {
	s := newTestSession()

	s.EnterVisual(VisualLine)
	assert.IsType(t, VisualMode{}, s.Mode)

	// Same kind again exits.
	s.EnterVisual(VisualLine)
	assert.IsType(t, NormalMode{}, s.Mode)
}

func TestEnterVisualSwitchKindReanchors(t *testing.T) {
	s := newTestSession()

	s.EnterVisual(VisualLine)
	s.CursorDown()
	s.EnterVisual(VisualBlock)

	v, ok := s.Mode.(VisualMode)
	require.True(t, ok)
	assert.Equal(t, VisualBlock, v.Kind)
	assert.Equal(t, 1, v.AnchorRow)
}

func TestVisualRangeNormalized(t *testing.T) {
	s := newTestSession()

	s.Cursor = 2
	s.EnterVisual(VisualLine)
	s.CursorUp()
	s.CursorUp()

	startRow, _, endRow, _, ok := s.VisualRange()
	require.True(t, ok)
	assert.Equal(t, 0, startRow)
	assert.Equal(t, 2, endRow)
	assert.Equal(t, 3, s.VisualSelectionCount())
}

func TestLineSelectionCoversWholeRows(t *testing.T) {
	s := newTestSession()

	s.EnterVisual(VisualLine)
	s.CursorDown()

	assert.True(t, s.InVisualSelection(0, 0))
	assert.True(t, s.InVisualSelection(1, 5))
	assert.False(t, s.InVisualSelection(2, 0))
	assert.True(t, s.RowInVisualSelection(1))
	assert.False(t, s.RowInVisualSelection(2))
}

func TestBlockSelectionRespectsColumns(t *testing.T) {
	s := newTestSession()

	s.EnterVisual(VisualBlock)
	s.CursorDown()
	s.ColumnRight()

	assert.True(t, s.InVisualSelection(0, 0))
	assert.True(t, s.InVisualSelection(0, 1))
	assert.True(t, s.InVisualSelection(1, 0))
	assert.True(t, s.InVisualSelection(1, 1))
	assert.False(t, s.InVisualSelection(1, 2))
	assert.False(t, s.InVisualSelection(2, 0))
}

func TestCaptureVisualEditTargets(t *testing.T) {
	s := newTestSession()

	s.EnterVisual(VisualLine)
	s.CursorDown()

	count := s.CaptureVisualEditTargets()
	assert.Equal(t, 2, count)
	assert.Equal(t, []githist.CommitID{testID(1), testID(2)}, s.VisualEditTargets)
	assert.IsType(t, NormalMode{}, s.Mode)

	s.ClearVisualEditTargets()
	assert.Nil(t, s.VisualEditTargets)
}

func TestCaptureOutsideVisualModeIsNoop(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, 0, s.CaptureVisualEditTargets())
	assert.Nil(t, s.VisualEditTargets)
}

func TestToggleVisualSelection(t *testing.T) {
	s := newTestSession()

	s.EnterVisual(VisualLine)
	s.CursorDown()
	s.ToggleVisualSelection()

	// Selection applied, visual mode still active.
	assert.True(t, s.IsSelected(testID(1)))
	assert.True(t, s.IsSelected(testID(2)))
	assert.False(t, s.IsSelected(testID(3)))
	assert.IsType(t, VisualMode{}, s.Mode)
}

func TestToggleVisualSelectionDeselectsSelectedRows(t *testing.T) {
	s := newTestSession()
	s.Selected[testID(1)] = struct{}{}

	// Range covers one selected and one unselected row; each flips.
	s.EnterVisual(VisualLine)
	s.CursorDown()
	s.ToggleVisualSelection()

	assert.False(t, s.IsSelected(testID(1)))
	assert.True(t, s.IsSelected(testID(2)))

	// A second toggle restores the starting state.
	s.ToggleVisualSelection()
	assert.True(t, s.IsSelected(testID(1)))
	assert.False(t, s.IsSelected(testID(2)))
}

func TestVisualRangeOutsideVisualMode(t *testing.T) {
	s := newTestSession()

	_, _, _, _, ok := s.VisualRange()
	assert.False(t, ok)
	assert.Equal(t, 0, s.VisualSelectionCount())
	assert.False(t, s.InVisualSelection(0, 0))
}
