package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// editorFinishedMsg signals that the external editor process exited.
type editorFinishedMsg struct {
	err error
}

// tipTickMsg rotates the idle tip shown in the status bar.
type tipTickMsg struct{}

const tipInterval = 30 * time.Second

// nextTipTick schedules the next tip rotation.
func nextTipTick() tea.Cmd {
	return tea.Tick(tipInterval, func(time.Time) tea.Msg {
		return tipTickMsg{}
	})
}
