package ui

import (
	"fmt"

	"mend/githist"
	"mend/session"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case key.Matches(msg, keys.Application.Quit.Binding):
		if m.sess.IsDirty() {
			m.sess.Mode = session.QuittingMode{}
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Navigation.Down.Binding):
		m.sess.CursorDown()
	case key.Matches(msg, keys.Navigation.Up.Binding):
		m.sess.CursorUp()
	case key.Matches(msg, keys.Navigation.Top.Binding):
		m.sess.CursorTop()
	case key.Matches(msg, keys.Navigation.Bottom.Binding):
		m.sess.CursorBottom()
	case key.Matches(msg, keys.Navigation.PageDown.Binding):
		m.sess.PageDown(pageSize)
	case key.Matches(msg, keys.Navigation.PageUp.Binding):
		m.sess.PageUp(pageSize)

	case key.Matches(msg, keys.Navigation.Left.Binding),
		key.Matches(msg, keys.Navigation.PrevField.Binding):
		m.sess.PrevEditableColumn()
	case key.Matches(msg, keys.Navigation.Right.Binding),
		key.Matches(msg, keys.Navigation.NextField.Binding):
		m.sess.NextEditableColumn()

	case key.Matches(msg, keys.Selection.Toggle.Binding):
		m.sess.ToggleSelection()
	case key.Matches(msg, keys.Selection.All.Binding):
		m.sess.SelectAll()
	case key.Matches(msg, keys.Selection.None.Binding):
		m.sess.DeselectAll()

	case key.Matches(msg, keys.Editing.Delete.Binding):
		m.toggleDeletion()

	case key.Matches(msg, keys.Editing.MoveUp.Binding):
		m.moveCommitUp()
	case key.Matches(msg, keys.Editing.MoveDown.Binding):
		m.moveCommitDown()

	case key.Matches(msg, keys.Editing.Edit.Binding):
		return teaModel(m.startEdit())

	case key.Matches(msg, keys.Editing.Search.Binding):
		m.search.SetValue(m.sess.SearchQuery)
		m.search.CursorEnd()
		m.search.Focus()
		m.sess.Mode = session.SearchMode{}
		return m, textinput.Blink

	case key.Matches(msg, keys.Editing.Undo.Binding):
		if desc, ok := m.sess.Undo(); ok {
			m.sess.SetSuccess(fmt.Sprintf("Undone: %s", desc))
		} else {
			m.sess.SetError("Nothing to undo")
		}
	case key.Matches(msg, keys.Editing.Redo.Binding):
		if desc, ok := m.sess.Redo(); ok {
			m.sess.SetSuccess(fmt.Sprintf("Redone: %s", desc))
		} else {
			m.sess.SetError("Nothing to redo")
		}

	case key.Matches(msg, keys.Application.Discard.Binding):
		if m.sess.IsDirty() {
			return teaModel(m.openConfirm(session.ConfirmDiscard))
		}

	case key.Matches(msg, keys.Application.Apply.Binding):
		if m.sess.IsDirty() {
			return teaModel(m.openConfirm(session.ConfirmApply))
		}
		m.sess.SetError("No changes to apply")

	case key.Matches(msg, keys.Application.Help.Binding):
		m.sess.HelpScroll = 0
		m.sess.Mode = session.HelpMode{}

	case key.Matches(msg, keys.Selection.VisualLine.Binding):
		m.sess.EnterVisual(session.VisualLine)
	case key.Matches(msg, keys.Selection.VisualBlock.Binding):
		m.sess.EnterVisual(session.VisualBlock)
	}

	m.sess.UpdateScrollForHeight(m.tableHeight())
	return m, nil
}

func (m Model) updateVisual(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case msg.Type == tea.KeyEsc:
		m.sess.ExitVisual()

	case key.Matches(msg, keys.Selection.VisualLine.Binding):
		m.sess.EnterVisual(session.VisualLine)
	case key.Matches(msg, keys.Selection.VisualBlock.Binding):
		m.sess.EnterVisual(session.VisualBlock)

	case key.Matches(msg, keys.Navigation.Down.Binding):
		m.sess.CursorDown()
	case key.Matches(msg, keys.Navigation.Up.Binding):
		m.sess.CursorUp()
	case key.Matches(msg, keys.Navigation.Top.Binding):
		m.sess.CursorTop()
	case key.Matches(msg, keys.Navigation.Bottom.Binding):
		m.sess.CursorBottom()
	case key.Matches(msg, keys.Navigation.PageDown.Binding):
		m.sess.PageDown(pageSize)
	case key.Matches(msg, keys.Navigation.PageUp.Binding):
		m.sess.PageUp(pageSize)

	// Block selections extend over raw columns, not just editable ones.
	case key.Matches(msg, keys.Navigation.Left.Binding):
		m.sess.ColumnLeft()
	case key.Matches(msg, keys.Navigation.Right.Binding):
		m.sess.ColumnRight()

	case key.Matches(msg, keys.Selection.Toggle.Binding):
		m.sess.ToggleVisualSelection()

	case key.Matches(msg, keys.Editing.Delete.Binding):
		rows := m.sess.VisualRows()
		m.sess.ExitVisual()
		m.toggleDeletionOn(rows)

	case key.Matches(msg, keys.Editing.Edit.Binding):
		if m.sess.CaptureVisualEditTargets() > 0 {
			return teaModel(m.startEdit())
		}
	}

	m.sess.UpdateScrollForHeight(m.tableHeight())
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg, mode session.EditingMode) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		m.sess.ClearVisualEditTargets()
		m.cancelEditInput()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.confirmEdit(mode.Field)
		return m, nil

	case msg.Type == tea.KeyTab:
		if m.confirmEdit(mode.Field) {
			m.sess.NextEditableColumn()
			return teaModel(m.startEdit())
		}
		return m, nil

	case msg.Type == tea.KeyShiftTab:
		if m.confirmEdit(mode.Field) {
			m.sess.PrevEditableColumn()
			return teaModel(m.startEdit())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.sess.ClearFilter()
		m.sess.Mode = session.NormalMode{}
		return m, nil

	case tea.KeyEnter:
		m.sess.SearchQuery = m.search.Value()
		m.search.Blur()
		m.sess.ApplyFilter()
		m.sess.Mode = session.NormalMode{}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	maxScroll := m.helpMaxScroll()

	switch {
	case msg.Type == tea.KeyEsc,
		key.Matches(msg, m.keys.Application.Quit.Binding),
		key.Matches(msg, m.keys.Application.Help.Binding):
		m.sess.Mode = session.NormalMode{}

	case key.Matches(msg, m.keys.Navigation.Down.Binding):
		m.sess.HelpScroll = min(m.sess.HelpScroll+1, maxScroll)
	case key.Matches(msg, m.keys.Navigation.Up.Binding):
		m.sess.HelpScroll = max(m.sess.HelpScroll-1, 0)
	case key.Matches(msg, m.keys.Navigation.PageDown.Binding),
		key.Matches(msg, m.keys.Selection.Toggle.Binding):
		m.sess.HelpScroll = min(m.sess.HelpScroll+pageSize, maxScroll)
	case key.Matches(msg, m.keys.Navigation.PageUp.Binding):
		m.sess.HelpScroll = max(m.sess.HelpScroll-pageSize, 0)
	case key.Matches(msg, m.keys.Navigation.Top.Binding):
		m.sess.HelpScroll = 0
	case key.Matches(msg, m.keys.Navigation.Bottom.Binding):
		m.sess.HelpScroll = maxScroll
	}

	return m, nil
}

func (m Model) updateQuitting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N", "esc":
		m.sess.Mode = session.NormalMode{}
	}
	return m, nil
}

// toggleDeletion flips deletion marks on the selected commits, falling back
// to the cursor commit.
func (m *Model) toggleDeletion() {
	m.toggleDeletionOn(m.sess.DeletionTargets())
}

func (m *Model) toggleDeletionOn(targets []githist.CommitID) {
	if len(targets) == 0 {
		return
	}

	willDelete := !m.sess.IsDeleted(targets[0])
	if err := m.sess.ToggleDeletion(targets); err != nil {
		m.sess.SetError(err.Error())
		return
	}

	count := len(targets)
	switch {
	case willDelete && count > 1:
		m.sess.SetSuccess(fmt.Sprintf("%d commits marked for deletion", count))
	case willDelete:
		m.sess.SetSuccess("Commit marked for deletion")
	case count > 1:
		m.sess.SetSuccess(fmt.Sprintf("%d commits restored", count))
	default:
		m.sess.SetSuccess("Commit restored")
	}
}

func (m *Model) moveCommitUp() {
	if m.sess.Cursor == 0 {
		m.sess.SetError("Already at top")
		return
	}
	if err := m.sess.MoveCommitUp(); err != nil {
		m.sess.SetError(err.Error())
		return
	}
	m.sess.SetSuccess("Commit moved up")
}

func (m *Model) moveCommitDown() {
	if m.sess.Cursor >= m.sess.VisibleCount()-1 {
		m.sess.SetError("Already at bottom")
		return
	}
	if err := m.sess.MoveCommitDown(); err != nil {
		m.sess.SetError(err.Error())
		return
	}
	m.sess.SetSuccess("Commit moved down")
}

// teaModel adapts a (Model, tea.Cmd) pair to the tea.Model interface.
func teaModel(m Model, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	return m, cmd
}
