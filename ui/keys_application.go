package ui

import "github.com/charmbracelet/bubbles/key"

// ApplicationKeys defines application-level key bindings
type ApplicationKeys struct {
	Apply   KeyWithTip
	Discard KeyWithTip
	Help    KeyWithTip
	Quit    KeyWithTip
}

// newApplicationKeys creates application key bindings
func newApplicationKeys() ApplicationKeys {
	return ApplicationKeys{
		Apply: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("w"),
				key.WithHelp("w", "apply changes"),
			),
			Tip: newTip("press %s to write your changes and rewrite history", "w"),
		},
		Discard: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "discard changes"),
			),
		},
		Help: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("?"),
				key.WithHelp("?", "help"),
			),
			Tip: newTip("press %s for the full keybinding reference", "?"),
		},
		Quit: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("q"),
				key.WithHelp("q", "quit"),
			),
		},
	}
}
