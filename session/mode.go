package session

import "mend/githist"

// VisualKind distinguishes line-wise from block-wise visual selection.
type VisualKind int

const (
	// VisualLine selects entire rows.
	VisualLine VisualKind = iota
	// VisualBlock selects a rectangular cell region.
	VisualBlock
)

// ConfirmAction identifies which destructive operation a confirmation
// dialog guards.
type ConfirmAction int

const (
	ConfirmApply ConfirmAction = iota
	ConfirmDiscard
	ConfirmQuit
)

// Prompt returns the question shown in the confirmation dialog.
func (a ConfirmAction) Prompt() string {
	switch a {
	case ConfirmApply:
		return "Apply all pending changes and rewrite history?"
	case ConfirmDiscard:
		return "Discard all pending changes?"
	case ConfirmQuit:
		return "You have unsaved changes. Quit anyway?"
	}
	return "Are you sure?"
}

// Mode is the modal state of the session. Exactly one mode is active at a
// time; variants carry payload only where the mode needs it.
type Mode interface {
	isMode()
}

// NormalMode is the initial navigation mode.
type NormalMode struct{}

// VisualMode is a vim-style range selection anchored where it was entered.
type VisualMode struct {
	AnchorRow int
	AnchorCol int
	Kind      VisualKind
}

// EditingMode is an in-progress single-field edit.
type EditingMode struct {
	Row   int
	Field githist.Field
}

// SearchMode is buffered filter-query input.
type SearchMode struct{}

// ConfirmingMode is a pending yes/no decision for a destructive action.
type ConfirmingMode struct {
	Action ConfirmAction
}

// HelpMode shows the scrollable help screen.
type HelpMode struct{}

// QuittingMode asks whether to quit with unsaved changes.
type QuittingMode struct{}

func (NormalMode) isMode()     {}
func (VisualMode) isMode()     {}
func (EditingMode) isMode()    {}
func (SearchMode) isMode()     {}
func (ConfirmingMode) isMode() {}
func (HelpMode) isMode()       {}
func (QuittingMode) isMode()   {}
