// Package editor hands multi-line text off to the user's external editor.
// The caller runs the returned command through the terminal program (so the
// alternate screen is suspended) and reads the result back afterwards.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const fallbackEditor = "vim"

// Resolve picks the editor binary: explicit override, then $EDITOR, then
// $VISUAL, then vim.
func Resolve(override string) string {
	if override != "" {
		return override
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return fallbackEditor
}

// Edit is one pending external edit backed by a temp file.
type Edit struct {
	path     string
	original string
}

// Start writes the initial text to a temp file and returns the editor
// command to run on it.
func Start(editorCmd, initial string) (*Edit, *exec.Cmd, error) {
	f, err := os.CreateTemp("", "mend-edit-*.txt")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	e := &Edit{path: f.Name(), original: initial}
	return e, exec.Command(editorCmd, f.Name()), nil
}

// Result reads the edited text back, trimming trailing whitespace, and
// removes the temp file.
func (e *Edit) Result() (string, error) {
	defer os.Remove(e.path)

	data, err := os.ReadFile(e.path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return strings.TrimRight(string(data), " \t\r\n"), nil
}

// Original returns the text the edit started from.
func (e *Edit) Original() string {
	return e.original
}

// Discard removes the temp file without reading it.
func (e *Edit) Discard() {
	os.Remove(e.path)
}
