package ui

import "github.com/charmbracelet/bubbles/key"

// EditingKeys defines key bindings for modifying commits
type EditingKeys struct {
	Delete   KeyWithTip
	Edit     KeyWithTip
	MoveDown KeyWithTip
	MoveUp   KeyWithTip
	Redo     KeyWithTip
	Search   KeyWithTip
	Undo     KeyWithTip
}

// newEditingKeys creates editing key bindings
func newEditingKeys() EditingKeys {
	return EditingKeys{
		Delete: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("d", "x"),
				key.WithHelp("d", "delete"),
			),
			Tip: newTip("press %s to mark a commit for deletion, %s again to restore it", "d", "d"),
		},
		Edit: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("e", "enter"),
				key.WithHelp("e/enter", "edit"),
			),
			Tip: newTip("press %s on a cell to edit it in place", "enter"),
		},
		MoveDown: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("J", "ctrl+j"),
				key.WithHelp("J", "move commit down"),
			),
		},
		MoveUp: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("K", "ctrl+k"),
				key.WithHelp("K", "move commit up"),
			),
			Tip: newTip("press %s or %s to reorder the commit under the cursor", "K", "J"),
		},
		Redo: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("ctrl+r"),
				key.WithHelp("ctrl+r", "redo"),
			),
		},
		Search: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("/"),
				key.WithHelp("/", "search"),
			),
			Tip: newTip("press %s to filter commits by author, message or hash", "/"),
		},
		Undo: KeyWithTip{
			Binding: key.NewBinding(
				key.WithKeys("u"),
				key.WithHelp("u", "undo"),
			),
			Tip: newTip("press %s to undo, %s to redo", "u", "ctrl+r"),
		},
	}
}
