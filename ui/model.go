// Package ui implements the interactive commit table: a bubbletea model
// dispatching on the session's modal state, with inline field editing,
// vim-style visual selection, search filtering and the apply pipeline.
package ui

import (
	"fmt"
	"log/slog"

	"mend/editor"
	"mend/githist"
	"mend/session"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"mend/theme"
)

// pageSize is the row count for ctrl+d / ctrl+u paging.
const pageSize = 10

// Backend is the repository surface the UI needs to load commits and apply
// a rewrite. *githist.Repository satisfies it; tests substitute a fake.
type Backend interface {
	githist.CommitStore
	LoadCommits(limit int) ([]githist.CommitData, error)
	StashChanges() (bool, error)
	UnstashChanges() error
	CreateBackupRef(branch string)
}

// externalEdit tracks an in-flight external editor invocation for a commit
// message edit.
type externalEdit struct {
	edit  *editor.Edit
	field githist.Field
}

// Model is the bubbletea model wrapping the edit session.
type Model struct {
	sess *session.Session
	repo Backend
	keys KeyMap

	// input is the inline edit bar; editOriginal the value before editing.
	input        textinput.Model
	editOriginal string

	search textinput.Model

	confirm       *huh.Form
	confirmAccept *bool

	external  *externalEdit
	editorCmd string

	width  int
	height int

	// tip is the currently displayed rotating tip, empty when hidden.
	tip    string
	tipIdx int
}

// NewModel creates the model for an edit session. editorCmd overrides the
// external editor used for commit messages; empty falls back to $EDITOR.
func NewModel(sess *session.Session, repo Backend, editorCmd string) Model {
	input := textinput.New()
	input.Prompt = ""
	input.TextStyle = theme.InputStyle

	search := textinput.New()
	search.Prompt = ""
	search.TextStyle = theme.InputStyle

	return Model{
		sess:      sess,
		repo:      repo,
		keys:      NewKeyMap(),
		input:     input,
		search:    search,
		editorCmd: editorCmd,
	}
}

// Init starts cursor blinking and the tip rotation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, nextTipTick())
}

// Update is the single event loop; all state changes funnel through here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sess.UpdateScrollForHeight(m.tableHeight())
		return m, nil

	case editorFinishedMsg:
		return m.finishExternalEdit(msg.err)

	case tipTickMsg:
		m.rotateTip()
		return m, nextTipTick()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if mode, ok := m.sess.Mode.(session.ConfirmingMode); ok {
			return m.updateConfirming(msg, mode)
		}

		// Transient messages and tips live until the next keypress.
		m.sess.ClearMessages()
		m.tip = ""

		switch mode := m.sess.Mode.(type) {
		case session.NormalMode:
			return m.updateNormal(msg)
		case session.VisualMode:
			return m.updateVisual(msg)
		case session.EditingMode:
			return m.updateEditing(msg, mode)
		case session.SearchMode:
			return m.updateSearch(msg)
		case session.HelpMode:
			return m.updateHelp(msg)
		case session.QuittingMode:
			return m.updateQuitting(msg)
		}

	default:
		if mode, ok := m.sess.Mode.(session.ConfirmingMode); ok {
			return m.updateConfirming(msg, mode)
		}
		if _, ok := m.sess.Mode.(session.EditingMode); ok {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if _, ok := m.sess.Mode.(session.SearchMode); ok {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// rotateTip advances to the next registered tip.
func (m *Model) rotateTip() {
	all := GetTips()
	if len(all) == 0 {
		return
	}
	m.tip = RenderTip(all[m.tipIdx%len(all)])
	m.tipIdx++
}

// tableHeight is the row capacity of the commit table for the current
// window and mode.
func (m Model) tableHeight() int {
	h := m.height - 1 - 1 - detailPaneHeight - 1 // title, header, detail, status
	switch m.sess.Mode.(type) {
	case session.EditingMode, session.SearchMode, session.QuittingMode:
		h--
	}
	return max(h, 1)
}

// openConfirm swaps the detail pane for a yes/no form guarding action.
func (m Model) openConfirm(action session.ConfirmAction) (Model, tea.Cmd) {
	accept := false
	m.confirmAccept = &accept

	confirm := huh.NewConfirm().
		Title(action.Prompt()).
		Value(m.confirmAccept).
		Affirmative("Yes").
		Negative("No")

	if action == session.ConfirmApply {
		summary := githist.ChangeSummary(
			m.sess.Commits,
			m.sess.Modifications,
			m.sess.Deleted,
			m.sess.OriginalOrder,
			m.sess.CurrentOrder,
		)
		confirm = confirm.Description(joinLines(summary))
	}

	m.confirm = huh.NewForm(huh.NewGroup(confirm))
	m.sess.Mode = session.ConfirmingMode{Action: action}
	return m, m.confirm.Init()
}

func (m Model) updateConfirming(msg tea.Msg, mode session.ConfirmingMode) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.closeConfirm()
		return m, nil
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		accepted := m.confirmAccept != nil && *m.confirmAccept
		m.closeConfirm()
		if accepted {
			switch mode.Action {
			case session.ConfirmApply:
				m.applyChanges()
			case session.ConfirmDiscard:
				m.sess.DiscardChanges()
				m.sess.SetSuccess("All changes discarded")
			case session.ConfirmQuit:
				return m, tea.Quit
			}
		}
		return m, nil
	case huh.StateAborted:
		m.closeConfirm()
		return m, nil
	}

	return m, cmd
}

func (m *Model) closeConfirm() {
	m.confirm = nil
	m.confirmAccept = nil
	m.sess.Mode = session.NormalMode{}
}

// startEdit begins editing the cursor cell. Single-line fields use the
// inline edit bar; the commit message opens the external editor.
func (m Model) startEdit() (Model, tea.Cmd) {
	commit, ok := m.sess.CursorCommit()
	if !ok {
		return m, nil
	}
	if commit.IsMerge {
		m.sess.SetError("Cannot edit merge commits")
		return m, nil
	}

	col := m.sess.ColumnIndex
	field, ok := col.EditableField()
	if !ok {
		m.sess.SetError("This column is not editable")
		return m, nil
	}

	current := session.CellValue(commit, m.sess.Modifications[commit.ID], col)
	if field.IsMultiline() {
		return m.startExternalEdit(field, current)
	}

	m.input.SetValue(current)
	m.input.CursorEnd()
	m.input.Focus()
	m.editOriginal = current
	m.sess.Mode = session.EditingMode{Row: m.sess.Cursor, Field: field}
	return m, textinput.Blink
}

// startExternalEdit hands a commit message to the configured editor and
// suspends the TUI until it exits.
func (m Model) startExternalEdit(field githist.Field, current string) (Model, tea.Cmd) {
	edit, cmd, err := editor.Start(m.editorCmd, current)
	if err != nil {
		m.sess.SetError(fmt.Sprintf("Failed to run editor: %v", err))
		return m, nil
	}

	slog.Debug("launching external editor", "field", field.DisplayName())
	m.external = &externalEdit{edit: edit, field: field}
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// finishExternalEdit applies the result of the external editor run.
func (m Model) finishExternalEdit(runErr error) (tea.Model, tea.Cmd) {
	ext := m.external
	m.external = nil
	if ext == nil {
		return m, nil
	}

	if runErr != nil {
		ext.edit.Discard()
		m.sess.ClearVisualEditTargets()
		m.sess.SetError("Editor exited with error")
		return m, nil
	}

	value, err := ext.edit.Result()
	if err != nil {
		m.sess.ClearVisualEditTargets()
		m.sess.SetError(fmt.Sprintf("Failed to read edited message: %v", err))
		return m, nil
	}

	count, err := m.sess.ApplyEdit(ext.field, value, ext.edit.Original())
	if err != nil {
		m.sess.SetError(err.Error())
		return m, nil
	}
	if count > 1 {
		m.sess.SetSuccess(fmt.Sprintf("Updated %d commits", count))
	} else if count == 1 {
		m.sess.SetSuccess("Message updated")
	}
	return m, nil
}

// confirmEdit validates and applies the inline edit bar value. Returns
// false when validation failed and editing should continue.
func (m *Model) confirmEdit(field githist.Field) bool {
	count, err := m.sess.ApplyEdit(field, m.input.Value(), m.editOriginal)
	if err != nil {
		m.sess.SetError(err.Error())
		return false
	}
	if count > 1 {
		m.sess.SetSuccess(fmt.Sprintf("Updated %d commits", count))
	}
	m.cancelEditInput()
	return true
}

func (m *Model) cancelEditInput() {
	m.input.Blur()
	m.input.SetValue("")
	m.editOriginal = ""
	m.sess.Mode = session.NormalMode{}
}
