package ui

import (
	"fmt"
	"strings"

	"mend/session"
	"mend/theme"
)

// modeIndicator is the short label shown at the left of the status bar.
func (m Model) modeIndicator() string {
	switch mode := m.sess.Mode.(type) {
	case session.VisualMode:
		if mode.Kind == session.VisualBlock {
			return " V-BLOCK "
		}
		return " V-LINE "
	case session.EditingMode:
		return " EDIT "
	case session.SearchMode:
		return " SEARCH "
	case session.ConfirmingMode:
		return " CONFIRM "
	case session.HelpMode:
		return " HELP "
	case session.QuittingMode:
		return " QUIT? "
	}
	return " NORMAL "
}

func (m Model) viewStatusBar() string {
	left := theme.ModeStyle.Render(m.modeIndicator()) + " " +
		theme.BranchStyle.Render("["+m.sess.BranchName+"]") + " "

	switch {
	case m.sess.ErrorMessage != "":
		left += theme.ErrorStyle.Render(m.sess.ErrorMessage)
	case m.sess.SuccessMessage != "":
		left += theme.SuccessStyle.Render(m.sess.SuccessMessage)
	case m.tip != "":
		left += m.tip
	default:
		left += m.shortHelp()
	}

	return padBetween(left, m.rightInfo(), m.width)
}

// shortHelp renders the curated keybinding hints.
func (m Model) shortHelp() string {
	var b strings.Builder
	for _, binding := range m.keys.ShortHelp() {
		help := binding.Help()
		b.WriteString(theme.StatusBarStyle.Bold(true).Render(help.Key))
		b.WriteString(theme.StatusBarStyle.Render(" " + help.Desc + "  "))
	}
	return strings.TrimRight(b.String(), " ")
}

// rightInfo builds the right-aligned status: selection counts, dirty and
// force-push indicators, and the cursor position.
func (m Model) rightInfo() string {
	var parts []string

	if _, ok := m.sess.Mode.(session.VisualMode); ok {
		count := m.sess.VisualSelectionCount()
		plural := "s"
		if count == 1 {
			plural = ""
		}
		parts = append(parts, theme.BranchStyle.Render(fmt.Sprintf("[%d row%s]", count, plural)))
	}

	if n := m.sess.ModifiedCount(); n > 0 {
		parts = append(parts, theme.ModifiedStyle.Render(fmt.Sprintf("%d modified", n)))
	}
	if n := m.sess.DeletedCount(); n > 0 {
		parts = append(parts, theme.DeletedStyle.Strikethrough(false).Render(fmt.Sprintf("%d deleted", n)))
	}

	if m.sess.IsDirty() {
		parts = append(parts, theme.WarningStyle.Render("[*]"))
		if m.sess.HasUpstream {
			parts = append(parts, theme.WarningStyle.Render("(force push)"))
		}
	}

	pos := "0/0"
	if total := m.sess.VisibleCount(); total > 0 {
		pos = fmt.Sprintf("%d/%d", m.sess.Cursor+1, total)
	}
	parts = append(parts, theme.StatusBarStyle.Render(pos+" "))

	return strings.Join(parts, " ")
}
