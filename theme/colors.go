package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "6" // Cyan - titles, focused borders
	ColorSecondary Color = "5" // Magenta - hashes
)

// Field colors
const (
	ColorAuthor  Color = "6" // Cyan
	ColorDate    Color = "4" // Blue
	ColorHash    Color = "5" // Magenta
	ColorMessage Color = "7" // Default-ish text
)

// UI semantic colors
const (
	ColorError    Color = "1"   // Red
	ColorModified Color = "3"   // Yellow - pending overlay values
	ColorMuted    Color = "241" // Gray - secondary text
	ColorNormal   Color = "250" // Default text
	ColorSubtle   Color = "245" // Light gray - labels
	ColorSuccess  Color = "2"   // Green
	ColorWarning  Color = "3"   // Yellow
)

// State colors
const (
	ColorDeleted  Color = "1"   // Red - commits marked for deletion
	ColorDirty    Color = "3"   // Yellow - unsaved-changes indicator
	ColorSelected Color = "2"   // Green - checkbox marks
	ColorVisual   Color = "240" // Dark gray - visual selection background
)

// Accent colors
const (
	ColorHelpGroup Color = "141" // Purple
	ColorVersion   Color = "240" // Dark gray
)
