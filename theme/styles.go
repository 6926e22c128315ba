package theme

import "github.com/charmbracelet/lipgloss"

// Title and status bar styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	DirtyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDirty)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ModeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)
)

// Table styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	HashStyle = lipgloss.NewStyle().
			Foreground(ColorHash)

	AuthorStyle = lipgloss.NewStyle().
			Foreground(ColorAuthor)

	DateStyle = lipgloss.NewStyle().
			Foreground(ColorDate)

	MessageStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	ModifiedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorModified)

	CursorCellStyle = lipgloss.NewStyle().
			Reverse(true)

	VisualCellStyle = lipgloss.NewStyle().
			Bold(true).
			Background(ColorVisual)

	VisualCursorCellStyle = lipgloss.NewStyle().
				Bold(true).
				Background(ColorPrimary).
				Foreground(lipgloss.Color("0"))

	SelectedMarkStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSelected)

	DeletedStyle = lipgloss.NewStyle().
			Foreground(ColorDeleted).
			Strikethrough(true)
)

// Detail pane styles
var (
	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorSubtle).
				Width(16)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(ColorNormal)

	DetailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), true, false, false, false).
				BorderForeground(ColorMuted)
)

// Edit and search bar styles
var (
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	InputStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)
)

// Rotating tip styles
var (
	TipTextStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	TipKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorNormal)
)

// Help screen styles
var (
	HelpGroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHelpGroup)

	HelpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorNormal).
			Width(18)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)
