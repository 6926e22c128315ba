package githist

import (
	"errors"
	"fmt"
)

// Sentinel errors for repository preconditions.
var (
	// ErrRebaseInProgress means the repository has an unfinished rebase.
	ErrRebaseInProgress = errors.New("rebase in progress - complete or abort it first")

	// ErrMergeInProgress means the repository has an unfinished merge.
	ErrMergeInProgress = errors.New("merge in progress - complete or abort it first")

	// ErrNoCommits means the repository has no reachable history.
	ErrNoCommits = errors.New("no commits found in repository")
)

// NotARepositoryError is returned when a path has no discoverable git repository.
type NotARepositoryError struct {
	Path string
}

func (e *NotARepositoryError) Error() string {
	return fmt.Sprintf("not a git repository: %s", e.Path)
}

// InvalidEmailError is a field-level validation failure for email input.
type InvalidEmailError struct {
	Value string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("invalid email format: %q", e.Value)
}

// InvalidDateError is a field-level validation failure for date input.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date format: %q (expected: YYYY-MM-DD HH:MM:SS [+/-]HHMM)", e.Value)
}

// CommitNotFoundError means an id in the session order had no loaded commit
// data. This is an internal invariant violation, fatal to the rewrite attempt.
type CommitNotFoundError struct {
	ID CommitID
}

func (e *CommitNotFoundError) Error() string {
	return fmt.Sprintf("commit not found: %s", e.ID)
}

// RewriteError wraps any failure that aborts a history rewrite.
type RewriteError struct {
	Reason string
	Err    error
}

func (e *RewriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot rewrite history: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot rewrite history: %s", e.Reason)
}

func (e *RewriteError) Unwrap() error { return e.Err }
