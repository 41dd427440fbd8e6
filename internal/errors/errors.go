// Package errors defines sentinel errors shared across wt commands.
package errors

import "errors"

var (
	ErrWorktreeNotFound   = errors.New("worktree not found")
	ErrConfigNotFound     = errors.New("configuration not found")
	ErrGitOperationFailed = errors.New("git operation failed")
	ErrNotARepository     = errors.New("not a git repository")
	ErrMainWorktree       = errors.New("cannot remove the main worktree")
	ErrInvalidJSON        = errors.New("invalid JSON in config file")
	ErrInvalidConfig      = errors.New("invalid configuration")
)
