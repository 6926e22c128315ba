package ui

import (
	"fmt"
	"log/slog"

	"mend/githist"
)

// applyChanges rewrites the branch with all pending changes. Uncommitted
// work is stashed around the rewrite and restored afterwards; when the
// restore fails after a successful rewrite the user is told to pop the
// stash manually instead of failing the whole apply.
func (m *Model) applyChanges() {
	stashed, err := m.repo.StashChanges()
	if err != nil {
		m.sess.SetError(fmt.Sprintf("Failed to stash changes: %v", err))
		return
	}

	applyErr := m.applyInner()

	if stashed {
		if uerr := m.repo.UnstashChanges(); uerr != nil {
			slog.Error("unstash after rewrite failed", "error", uerr)
			if applyErr == nil {
				m.sess.SetError(fmt.Sprintf(
					"Warning: Could not restore stashed changes: %v. Use 'git stash pop' manually.", uerr))
				return
			}
		}
	}

	if applyErr != nil {
		m.sess.SetError(applyErr.Error())
	}
}

func (m *Model) applyInner() error {
	m.repo.CreateBackupRef(m.sess.BranchName)

	err := githist.RewriteHistory(
		m.repo,
		m.sess.Commits,
		m.sess.Modifications,
		m.sess.Deleted,
		m.sess.CurrentOrder,
		m.sess.BranchName,
	)
	if err != nil {
		return err
	}

	commits, err := m.repo.LoadCommits(len(m.sess.Commits))
	if err != nil {
		return fmt.Errorf("history rewritten but reload failed: %w", err)
	}

	m.sess.ResetBaseline(commits)
	m.sess.SetSuccess("History rewritten successfully!")
	return nil
}
