package ui

import (
	"strings"

	"mend/githist"
	"mend/session"
	"mend/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Fixed column widths; name, email and message share the remaining space
// by weight.
const (
	markWidth = 3
	hashWidth = 7
	dateWidth = 16

	nameMinWidth    = 15
	nameMaxWidth    = 30
	emailMinWidth   = 20
	emailMaxWidth   = 35
	messageMinWidth = 20
	messageMaxWidth = 60
)

// columnWidths computes the rendered width of each table column for the
// current window.
func (m Model) columnWidths() [session.NumColumns]int {
	var w [session.NumColumns]int
	w[session.ColumnMark] = markWidth
	w[session.ColumnHash] = hashWidth
	w[session.ColumnDate] = dateWidth

	// One separating space between columns.
	flexible := m.width - markWidth - hashWidth - dateWidth - (session.NumColumns - 1)

	// Weights 2:2:3 across name, email, message.
	w[session.ColumnName] = clamp(flexible*2/7, nameMinWidth, nameMaxWidth)
	w[session.ColumnEmail] = clamp(flexible*2/7, emailMinWidth, emailMaxWidth)
	w[session.ColumnMessage] = clamp(flexible*3/7, messageMinWidth, messageMaxWidth)
	return w
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func (m Model) viewTable() string {
	widths := m.columnWidths()
	var b strings.Builder

	b.WriteString(m.renderHeader(widths))
	b.WriteString("\n")

	height := m.tableHeight()
	visible := m.sess.VisibleCount()
	for row := m.sess.ScrollOffset; row < m.sess.ScrollOffset+height; row++ {
		if row < visible {
			b.WriteString(m.renderRow(row, widths))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHeader(widths [session.NumColumns]int) string {
	_, editing := m.sess.Mode.(session.EditingMode)

	cells := make([]string, 0, session.NumColumns)
	for col := session.Column(0); col < session.NumColumns; col++ {
		style := theme.HeaderStyle
		if editing && col == m.sess.ColumnIndex {
			style = style.Reverse(true)
		}
		cells = append(cells, style.Render(fitCell(col.Header(), widths[col])))
	}
	return strings.Join(cells, " ")
}

func (m Model) renderRow(row int, widths [session.NumColumns]int) string {
	commit, ok := m.sess.VisibleCommit(row)
	if !ok {
		return ""
	}
	mods := m.sess.Modifications[commit.ID]
	deleted := m.sess.IsDeleted(commit.ID)

	cells := make([]string, 0, session.NumColumns)
	for col := session.Column(0); col < session.NumColumns; col++ {
		value, base := m.cellContent(row, commit.ID, col, deleted)
		modified := !deleted && m.fieldModified(mods, col)
		style := m.cellStyle(row, col, modified, base)
		if col == session.ColumnMessage || col == session.ColumnName || col == session.ColumnEmail {
			value = firstLine(value)
		}
		cells = append(cells, style.Render(fitCell(value, widths[col])))
	}
	return strings.Join(cells, " ")
}

// cellContent resolves the display text and base style for one cell.
func (m Model) cellContent(row int, id githist.CommitID, col session.Column, deleted bool) (string, lipgloss.Style) {
	commit, _ := m.sess.VisibleCommit(row)
	mods := m.sess.Modifications[id]

	if col == session.ColumnMark {
		switch {
		case deleted:
			return "[D]", theme.DeletedStyle
		case m.sess.IsSelected(id):
			return "[x]", theme.SelectedMarkStyle
		default:
			return "[ ]", theme.StatusBarStyle
		}
	}

	value := session.CellValue(commit, mods, col)
	if col == session.ColumnMessage {
		// The table shows the summary line only.
		value = mods.EffectiveSummary(commit.Summary)
	}
	if col == session.ColumnDate {
		// The table shows the short date; the full one lives in the
		// detail pane.
		if mods == nil || mods.AuthorDate == nil {
			value = commit.FormatAuthorDate()
		} else {
			value = mods.AuthorDate.Format("2006-01-02 15:04")
		}
	}

	if deleted {
		return value, theme.DeletedStyle
	}

	switch col {
	case session.ColumnHash:
		return value, theme.HashStyle
	case session.ColumnName, session.ColumnEmail:
		return value, theme.AuthorStyle
	case session.ColumnDate:
		return value, theme.DateStyle
	default:
		return value, theme.MessageStyle
	}
}

// fieldModified reports whether the overlay touches the field behind col.
func (m Model) fieldModified(mods *githist.Modifications, col session.Column) bool {
	if mods == nil {
		return false
	}
	switch col {
	case session.ColumnName:
		return mods.AuthorName != nil
	case session.ColumnEmail:
		return mods.AuthorEmail != nil
	case session.ColumnDate:
		return mods.AuthorDate != nil
	case session.ColumnMessage:
		return mods.Message != nil
	}
	return false
}

// cellStyle layers cursor and visual-selection highlighting over the base
// field style. Cursor wins over visual, visual over modified, modified over
// the field color.
func (m Model) cellStyle(row int, col session.Column, modified bool, base lipgloss.Style) lipgloss.Style {
	cursor := row == m.sess.Cursor && col == m.sess.ColumnIndex
	inVisual := m.sess.InVisualSelection(row, int(col))

	switch {
	case cursor && inVisual:
		return theme.VisualCursorCellStyle
	case cursor:
		return theme.CursorCellStyle
	case inVisual:
		return theme.VisualCellStyle
	case modified:
		return theme.ModifiedStyle
	}
	return base
}

// fitCell truncates with an ellipsis and pads to exactly width cells.
func fitCell(s string, width int) string {
	s = runewidth.Truncate(s, width, "...")
	return runewidth.FillRight(s, width)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
