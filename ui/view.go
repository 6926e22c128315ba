package ui

import (
	"strings"

	"mend/session"
	"mend/theme"
	"mend/version"

	"github.com/charmbracelet/lipgloss"
)

// detailPaneHeight is the fixed height of the detail pane, including its
// top rule.
const detailPaneHeight = 10

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if _, ok := m.sess.Mode.(session.HelpMode); ok {
		return m.viewHelp()
	}

	var b strings.Builder
	b.WriteString(m.viewTitle())
	b.WriteString("\n")
	b.WriteString(m.viewTable())
	b.WriteString(m.viewDetail())
	if bar := m.viewInputBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}
	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) viewTitle() string {
	left := theme.TitleStyle.Render(" mend ") + theme.StatusBarStyle.Render("- "+version.Tagline)
	if m.sess.IsDirty() {
		left += theme.WarningStyle.Render(" [modified]")
	}

	right := theme.BranchStyle.Render("["+m.sess.BranchName+"] ")
	return padBetween(left, right, m.width)
}

// viewInputBar renders the edit or search bar when one is active.
func (m Model) viewInputBar() string {
	switch mode := m.sess.Mode.(type) {
	case session.EditingMode:
		return theme.PromptStyle.Render("Edit "+mode.Field.DisplayName()+": ") + m.input.View()
	case session.SearchMode:
		return theme.PromptStyle.Render("/") + m.search.View()
	case session.QuittingMode:
		return theme.WarningStyle.Render(session.ConfirmQuit.Prompt() + " (y/n)")
	}
	return ""
}

// padBetween joins left and right with enough spaces to fill width.
func padBetween(left, right string, width int) string {
	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", pad) + right
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
