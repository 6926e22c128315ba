package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Application ApplicationKeys
	Navigation  NavigationKeys
	Selection   SelectionKeys
	Editing     EditingKeys
}

// NewKeyMap creates a new KeyMap with all key bindings initialized
func NewKeyMap() KeyMap {
	return KeyMap{
		Application: newApplicationKeys(),
		Navigation:  newNavigationKeys(),
		Selection:   newSelectionKeys(),
		Editing:     newEditingKeys(),
	}
}

// ShortHelp returns a curated list of key bindings for the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Editing.Edit.Binding,
		k.Selection.Toggle.Binding,
		k.Selection.VisualLine.Binding,
		k.Editing.Delete.Binding,
		k.Editing.Search.Binding,
		k.Application.Apply.Binding,
		k.Application.Help.Binding,
		k.Application.Quit.Binding,
	}
}
