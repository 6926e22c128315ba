// Package cmd defines the command-line interface.
package cmd

import (
	"fmt"
	"os"

	"mend/config"
	"mend/editor"
	"mend/githist"
	"mend/logging"
	"mend/session"
	"mend/ui"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run RunCmd `cmd:"" help:"Open the commit editor (default)" default:"1"`

	// Internal field for settings (not a flag)
	settings *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// Settings returns the loaded settings
func (c *CLI) Settings() *config.Settings {
	return c.settings
}

// AfterApply initializes logging after CLI parsing and applies settings.
// Precedence: CLI flags > env vars > settings.json > defaults.
func (c *CLI) AfterApply() error {
	if c.settings != nil {
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("MEND_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("MEND_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Environment is set after initialization so any child process (the
	// external editor, git hooks) inherits the debug settings and appends
	// to the same log file.
	if c.Debug || c.DebugFile != "" {
		os.Setenv("MEND_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("MEND_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("MEND_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	return nil
}

// RunCmd opens the interactive commit editor
type RunCmd struct {
	Path                    string `arg:"" help:"Repository path (any directory inside the repository works)" type:"path" default:"."`
	Limit                   int    `help:"Maximum number of commits to load" default:"50"`
	Editor                  string `help:"Editor for commit messages (overrides $EDITOR and $VISUAL)"`
	SeparateAuthorCommitter bool   `help:"Do not mirror author edits into the committer fields"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	if settings := cli.Settings(); settings != nil {
		if r.Limit == 50 && settings.Limit != nil {
			r.Limit = *settings.Limit
		}
		if r.Editor == "" && settings.Editor != "" {
			r.Editor = settings.Editor
		}
		if !r.SeparateAuthorCommitter &&
			settings.SeparateAuthorCommitter != nil && *settings.SeparateAuthorCommitter {
			r.SeparateAuthorCommitter = true
		}
	}

	logging.Logger.Info("Starting mend", "path", r.Path, "limit", r.Limit)

	repo, err := githist.Open(r.Path)
	if err != nil {
		return err
	}

	branch, err := repo.CurrentBranchName()
	if err != nil {
		return err
	}

	hasUpstream, err := repo.HasUpstream()
	if err != nil {
		logging.Logger.Warn("Failed to check upstream", "error", err)
		hasUpstream = false
	}

	commits, err := repo.LoadCommits(r.Limit)
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		return githist.ErrNoCommits
	}

	head, err := repo.HeadCommitID()
	if err != nil {
		return err
	}

	logging.Logger.Info("Loaded commits",
		"count", len(commits),
		"branch", branch,
		"head", head.String(),
		"has_upstream", hasUpstream)

	sess := session.New(commits, branch, hasUpstream)
	sess.SyncAuthorToCommitter = !r.SeparateAuthorCommitter

	p := tea.NewProgram(
		ui.NewModel(sess, repo, editor.Resolve(r.Editor)),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
