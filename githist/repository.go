package githist

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository wraps a go-git repository with the operations mend needs:
// loading commit snapshots, creating rewritten commits, moving refs, and
// stashing the working tree around a rewrite.
type Repository struct {
	repo *gitlib.Repository
	root string
}

// Open discovers a repository at or above path and validates that it is not
// mid-rebase or mid-merge. Uncommitted changes are allowed at open time;
// they only block (or rather, auto-stash around) a rewrite.
func Open(path string) (*Repository, error) {
	repo, err := gitlib.PlainOpenWithOptions(path, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, &NotARepositoryError{Path: path}
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	r := &Repository{repo: repo, root: wt.Filesystem.Root()}
	if err := r.validateState(); err != nil {
		return nil, err
	}
	return r, nil
}

// Root returns the working tree root directory.
func (r *Repository) Root() string {
	return r.root
}

// validateState rejects repositories with an unfinished rebase or merge.
func (r *Repository) validateState() error {
	gitDir := r.gitDir()
	for _, marker := range []string{"rebase-merge", "rebase-apply"} {
		if _, err := os.Stat(filepath.Join(gitDir, marker)); err == nil {
			return ErrRebaseInProgress
		}
	}
	if _, err := os.Stat(filepath.Join(gitDir, "MERGE_HEAD")); err == nil {
		return ErrMergeInProgress
	}
	return nil
}

// gitDir resolves the .git directory, following the gitdir pointer file used
// by linked worktrees.
func (r *Repository) gitDir() string {
	dotGit := filepath.Join(r.root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil || info.IsDir() {
		return dotGit
	}
	data, err := os.ReadFile(dotGit)
	if err != nil {
		return dotGit
	}
	target := strings.TrimSpace(strings.TrimPrefix(string(data), "gitdir:"))
	if !filepath.IsAbs(target) {
		target = filepath.Join(r.root, target)
	}
	return target
}

// HasUncommittedChanges reports whether tracked files have staged or
// unstaged changes. Untracked files do not count.
func (r *Repository) HasUncommittedChanges() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("worktree status: %w", err)
	}
	for _, fs := range status {
		if fs.Staging == gitlib.Untracked && fs.Worktree == gitlib.Untracked {
			continue
		}
		if fs.Staging != gitlib.Unmodified || fs.Worktree != gitlib.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// CurrentBranchName returns the short name of the checked-out branch.
func (r *Repository) CurrentBranchName() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", ErrNoCommits
		}
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// HasUpstream reports whether the current branch has a configured upstream.
func (r *Repository) HasUpstream() (bool, error) {
	name, err := r.CurrentBranchName()
	if err != nil {
		return false, err
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return false, fmt.Errorf("read config: %w", err)
	}
	branch, ok := cfg.Branches[name]
	return ok && branch.Merge != "", nil
}

// LoadCommits walks history from HEAD, newest first, up to limit entries.
func (r *Repository) LoadCommits(limit int) ([]CommitData, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommits
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := r.repo.Log(&gitlib.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walk commits: %w", err)
	}
	defer iter.Close()

	commits := make([]CommitData, 0, limit)
	for len(commits) < limit {
		c, err := iter.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("walk commits: %w", err)
		}
		commits = append(commits, NewCommitData(c))
	}

	if len(commits) == 0 {
		return nil, ErrNoCommits
	}
	return commits, nil
}

// HeadCommitID returns the id the current branch points at.
func (r *Repository) HeadCommitID() (CommitID, error) {
	head, err := r.repo.Head()
	if err != nil {
		return CommitID{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	return CommitID(head.Hash()), nil
}

// CreateBackupRef records the pre-rewrite branch tip under
// refs/original/heads/<branch>. An existing backup is left alone, and any
// failure is logged rather than returned: losing the backup must not block
// the rewrite itself.
func (r *Repository) CreateBackupRef(branch string) {
	name := plumbing.ReferenceName("refs/original/heads/" + branch)
	if _, err := r.repo.Reference(name, false); err == nil {
		slog.Debug("backup ref already exists", "ref", name.String())
		return
	}

	head, err := r.repo.Head()
	if err != nil {
		slog.Warn("skipping backup ref, cannot resolve HEAD", "error", err)
		return
	}
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(name, head.Hash())); err != nil {
		slog.Warn("failed to create backup ref", "ref", name.String(), "error", err)
		return
	}
	slog.Info("created backup ref", "ref", name.String(), "tip", head.Hash().String())
}

// CreateCommit writes a new commit object reusing an existing tree. It
// implements CommitStore for the rewrite engine.
func (r *Repository) CreateCommit(author, committer Signature, message string, tree plumbing.Hash, parents []CommitID) (CommitID, error) {
	parentHashes := make([]plumbing.Hash, len(parents))
	for i, p := range parents {
		parentHashes[i] = p.Hash()
	}

	commit := &object.Commit{
		Author: object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  author.When,
		},
		Committer: object.Signature{
			Name:  committer.Name,
			Email: committer.Email,
			When:  committer.When,
		},
		Message:      message,
		TreeHash:     tree,
		ParentHashes: parentHashes,
	}

	obj := r.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return CommitID{}, fmt.Errorf("encode commit: %w", err)
	}
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return CommitID{}, fmt.Errorf("store commit: %w", err)
	}
	return CommitID(hash), nil
}

// UpdateBranch force-moves refs/heads/<branch> to the given commit. It
// implements CommitStore for the rewrite engine.
func (r *Repository) UpdateBranch(branch string, id CommitID, logMessage string) error {
	name := plumbing.NewBranchReferenceName(branch)
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(name, id.Hash())); err != nil {
		return fmt.Errorf("update %s: %w", name.String(), err)
	}
	slog.Info("branch updated", "ref", name.String(), "tip", id.Full(), "reason", logMessage)
	return nil
}

// StashChanges stashes any uncommitted changes via the git CLI (go-git has
// no stash support). Returns true when something was stashed.
func (r *Repository) StashChanges() (bool, error) {
	dirty, err := r.HasUncommittedChanges()
	if err != nil {
		return false, err
	}
	if !dirty {
		return false, nil
	}

	cmd := exec.Command("git", "stash", "push", "--include-untracked",
		"-m", "mend: auto-stash before history rewrite")
	cmd.Dir = r.root
	if output, err := cmd.CombinedOutput(); err != nil {
		slog.Error("git stash push failed", "error", err, "output", string(output))
		return false, fmt.Errorf("stash changes: %w: %s", err, strings.TrimSpace(string(output)))
	}
	slog.Info("stashed uncommitted changes")
	return true, nil
}

// UnstashChanges restores the most recent stash entry. Only call after
// StashChanges returned true.
func (r *Repository) UnstashChanges() error {
	cmd := exec.Command("git", "stash", "pop")
	cmd.Dir = r.root
	if output, err := cmd.CombinedOutput(); err != nil {
		slog.Error("git stash pop failed", "error", err, "output", string(output))
		return fmt.Errorf("restore stashed changes: %w: %s", err, strings.TrimSpace(string(output)))
	}
	slog.Info("restored stashed changes")
	return nil
}
