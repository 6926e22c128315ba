package ui

import (
	"strings"

	"mend/theme"
	"mend/version"

	"github.com/charmbracelet/bubbles/key"
)

// helpEntry is one key/description row on the help screen.
type helpEntry struct {
	key  string
	desc string
}

func entryFor(b key.Binding) helpEntry {
	h := b.Help()
	return helpEntry{key: h.Key, desc: h.Desc}
}

// helpSections builds the grouped keybinding reference.
func (m Model) helpSections() []struct {
	title   string
	entries []helpEntry
} {
	k := m.keys
	return []struct {
		title   string
		entries []helpEntry
	}{
		{"Navigation", []helpEntry{
			entryFor(k.Navigation.Down.Binding),
			entryFor(k.Navigation.Up.Binding),
			entryFor(k.Navigation.Left.Binding),
			entryFor(k.Navigation.Right.Binding),
			entryFor(k.Navigation.Top.Binding),
			entryFor(k.Navigation.Bottom.Binding),
			entryFor(k.Navigation.PageDown.Binding),
			entryFor(k.Navigation.PageUp.Binding),
			entryFor(k.Navigation.NextField.Binding),
			entryFor(k.Navigation.PrevField.Binding),
		}},
		{"Selection (batch edit)", []helpEntry{
			entryFor(k.Selection.Toggle.Binding),
			entryFor(k.Selection.All.Binding),
			entryFor(k.Selection.None.Binding),
			{"", "edits apply to every selected commit"},
		}},
		{"Visual mode", []helpEntry{
			entryFor(k.Selection.VisualLine.Binding),
			entryFor(k.Selection.VisualBlock.Binding),
			{"j/k", "extend selection vertically"},
			{"h/l", "extend selection horizontally (block)"},
			{"e/enter", "edit the selected commits"},
			{"space", "toggle checkboxes on the range"},
			{"esc", "cancel visual selection"},
		}},
		{"Editing", []helpEntry{
			entryFor(k.Editing.Edit.Binding),
			{"enter", "confirm the edit"},
			{"tab", "save and edit the next column"},
			{"shift+tab", "save and edit the previous column"},
			{"esc", "cancel the edit"},
			{"", "the message column opens your $EDITOR"},
		}},
		{"History", []helpEntry{
			entryFor(k.Editing.Delete.Binding),
			entryFor(k.Editing.MoveUp.Binding),
			entryFor(k.Editing.MoveDown.Binding),
			entryFor(k.Editing.Undo.Binding),
			entryFor(k.Editing.Redo.Binding),
		}},
		{"Search", []helpEntry{
			entryFor(k.Editing.Search.Binding),
			{"enter", "apply the filter"},
			{"esc", "clear the filter"},
		}},
		{"Actions", []helpEntry{
			entryFor(k.Application.Apply.Binding),
			entryFor(k.Application.Discard.Binding),
			entryFor(k.Application.Help.Binding),
			entryFor(k.Application.Quit.Binding),
		}},
	}
}

// helpLines renders the full help content as plain lines for scrolling.
func (m Model) helpLines() []string {
	lines := []string{
		theme.TitleStyle.Render("mend") + theme.StatusBarStyle.Render(" - "+version.Tagline),
		theme.VersionStyle.Render(version.Info()),
	}

	for _, section := range m.helpSections() {
		lines = append(lines, "", theme.HelpGroupStyle.Render(section.title))
		for _, e := range section.entries {
			lines = append(lines,
				"  "+theme.HelpKeyStyle.Render(e.key)+theme.HelpDescStyle.Render(e.desc))
		}
	}

	if all := GetTips(); len(all) > 0 {
		lines = append(lines, "", theme.HelpGroupStyle.Render("Tips"))
		for _, tip := range all {
			lines = append(lines, "  "+RenderTip(tip))
		}
	}

	lines = append(lines, "",
		theme.StatusBarStyle.Render("Press esc, q, or ? to close"))
	return lines
}

func (m Model) helpMaxScroll() int {
	return max(len(m.helpLines())-(m.height-1), 0)
}

func (m Model) viewHelp() string {
	lines := m.helpLines()
	start := min(m.sess.HelpScroll, m.helpMaxScroll())
	end := min(start+m.height-1, len(lines))

	var b strings.Builder
	for _, line := range lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(theme.StatusBarStyle.Render(" HELP "))
	return b.String()
}
