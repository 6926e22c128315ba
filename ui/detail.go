package ui

import (
	"fmt"
	"strings"

	"mend/githist"
	"mend/session"
	"mend/theme"
)

// viewDetail renders the fixed-height pane under the table: commit details
// for the cursor commit, or the confirmation form while one is open.
func (m Model) viewDetail() string {
	rule := theme.BranchStyle.Render(strings.Repeat("─", max(m.width, 1)))

	var lines []string
	if _, ok := m.sess.Mode.(session.ConfirmingMode); ok && m.confirm != nil {
		lines = strings.Split(m.confirm.View(), "\n")
	} else {
		lines = m.detailLines()
	}

	body := detailPaneHeight - 1
	start := min(m.sess.DetailScroll, max(len(lines)-body, 0))
	lines = lines[start:]

	var b strings.Builder
	b.WriteString(rule)
	b.WriteString("\n")
	for i := range body {
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) detailLines() []string {
	commit, ok := m.sess.CursorCommit()
	if !ok {
		return []string{theme.StatusBarStyle.Render("No commit selected")}
	}
	mods := m.sess.Modifications[commit.ID]

	label := func(s string) string { return theme.DetailLabelStyle.Render(s) }
	value := func(s string, modified bool) string {
		if modified {
			return theme.ModifiedStyle.Render(s)
		}
		return theme.DetailValueStyle.Render(s)
	}

	authorName := commit.Author.Name
	authorNameMod := mods != nil && mods.AuthorName != nil
	if authorNameMod {
		authorName = *mods.AuthorName
	}
	authorEmail := commit.Author.Email
	authorEmailMod := mods != nil && mods.AuthorEmail != nil
	if authorEmailMod {
		authorEmail = *mods.AuthorEmail
	}
	authorDate := commit.FormatAuthorDateFull()
	authorDateMod := mods != nil && mods.AuthorDate != nil
	if authorDateMod {
		authorDate = githist.FormatDate(*mods.AuthorDate)
	}

	committerName := commit.Committer.Name
	committerNameMod := mods != nil && mods.CommitterName != nil
	if committerNameMod {
		committerName = *mods.CommitterName
	}
	committerEmail := commit.Committer.Email
	committerEmailMod := mods != nil && mods.CommitterEmail != nil
	if committerEmailMod {
		committerEmail = *mods.CommitterEmail
	}
	committerDate := githist.FormatDate(commit.CommitterDate)
	committerDateMod := mods != nil && mods.CommitterDate != nil
	if committerDateMod {
		committerDate = githist.FormatDate(*mods.CommitterDate)
	}

	lines := []string{
		label("Hash") + theme.HashStyle.Render(commit.ID.Full()),
		label("Author") + value(authorName, authorNameMod) + theme.DetailValueStyle.Render(" <") +
			value(authorEmail, authorEmailMod) + theme.DetailValueStyle.Render(">"),
		label("Author date") + value(authorDate, authorDateMod),
		label("Committer") + value(committerName, committerNameMod) + theme.DetailValueStyle.Render(" <") +
			value(committerEmail, committerEmailMod) + theme.DetailValueStyle.Render(">"),
		label("Committer date") + value(committerDate, committerDateMod),
	}

	if n := mods.FieldCount(); n > 0 {
		lines = append(lines, label("Pending")+theme.ModifiedStyle.Render(fmt.Sprintf("%d field(s) modified", n)))
	}

	if len(commit.ParentIDs) > 0 {
		parents := make([]string, len(commit.ParentIDs))
		for i, p := range commit.ParentIDs {
			parents[i] = p.String()
		}
		line := label("Parents") + theme.HashStyle.Render(strings.Join(parents, ", "))
		if commit.IsMerge {
			line += theme.WarningStyle.Render(" (merge commit)")
		}
		lines = append(lines, line)
	}

	message := commit.Message
	messageMod := mods != nil && mods.Message != nil
	if messageMod {
		message = *mods.Message
	}
	lines = append(lines, "", label("Message"))
	for _, l := range strings.Split(strings.TrimRight(message, "\n"), "\n") {
		lines = append(lines, "  "+value(l, messageMod))
	}
	return lines
}
