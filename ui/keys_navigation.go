package ui

import "github.com/charmbracelet/bubbles/key"

// NavigationKeys defines key bindings for moving around the commit table
type NavigationKeys struct {
	Bottom    KeyWithTip
	Down      KeyWithTip
	Left      KeyWithTip
	NextField KeyWithTip
	PageDown  KeyWithTip
	PageUp    KeyWithTip
	PrevField KeyWithTip
	Right     KeyWithTip
	Top       KeyWithTip
	Up        KeyWithTip
}

// newNavigationKeys creates navigation key bindings
func newNavigationKeys() NavigationKeys {
	return NavigationKeys{
		Bottom: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("G", "end"),
				key.WithHelp("G", "last commit"),
			),
		},
		Down: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
		},
		Left: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("left", "h"),
				key.WithHelp("←/h", "previous column"),
			),
		},
		NextField: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("tab"),
				key.WithHelp("tab", "next column"),
			),
			Tip: newTip("press %s to cycle through the editable columns", "tab"),
		},
		PageDown: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("ctrl+d", "pgdown"),
				key.WithHelp("ctrl+d", "page down"),
			),
		},
		PageUp: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("ctrl+u", "pgup"),
				key.WithHelp("ctrl+u", "page up"),
			),
		},
		PrevField: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("shift+tab"),
				key.WithHelp("shift+tab", "previous column"),
			),
		},
		Right: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("right", "l"),
				key.WithHelp("→/l", "next column"),
			),
		},
		Top: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("g", "home"),
				key.WithHelp("g", "first commit"),
			),
		},
		Up: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
		},
	}
}
