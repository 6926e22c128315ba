package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings represents the structure of ~/.config/mend/settings.json
type Settings struct {
	Debug                   *bool  `json:"debug,omitempty"`
	Editor                  string `json:"editor,omitempty"`
	Limit                   *int   `json:"limit,omitempty"`
	MaxLogFiles             *int   `json:"max_log_files,omitempty"`
	SeparateAuthorCommitter *bool  `json:"separate_author_committer,omitempty"`
}

// LoadSettings loads settings from ~/.config/mend/settings.json
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	path := filepath.Join(homeDir, ".config", "mend", "settings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}
