package ui

import "github.com/charmbracelet/bubbles/key"

// SelectionKeys defines key bindings for checkbox and visual selection
type SelectionKeys struct {
	All         KeyWithTip
	None        KeyWithTip
	Toggle      KeyWithTip
	VisualBlock KeyWithTip
	VisualLine  KeyWithTip
}

// newSelectionKeys creates selection key bindings
func newSelectionKeys() SelectionKeys {
	return SelectionKeys{
		All: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("ctrl+a"),
				key.WithHelp("ctrl+a", "select all"),
			),
			Tip: newTip("press %s to select every commit for a batch edit", "ctrl+a"),
		},
		None: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("ctrl+n"),
				key.WithHelp("ctrl+n", "deselect all"),
			),
		},
		Toggle: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys(" ", "space"),
				key.WithHelp("space", "select"),
			),
			Tip: newTip("press %s to select commits; edits apply to all of them", "space"),
		},
		VisualBlock: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("ctrl+v"),
				key.WithHelp("ctrl+v", "visual block"),
			),
		},
		VisualLine: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("v", "V"),
				key.WithHelp("v", "visual"),
			),
			Tip: newTip("press %s to select a range of commits vim-style", "v"),
		},
	}
}
