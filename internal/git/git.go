// Package git wraps the git command line for the worktree operations wt needs.
package git

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/naoray/worktree-kit/internal/errors"
)

// Worktree represents a git worktree.
type Worktree struct {
	Path   string `json:"path" yaml:"path"`
	Branch string `json:"branch" yaml:"branch"`
	Head   string `json:"head" yaml:"head"`
	IsMain bool   `json:"isMain" yaml:"isMain"`
}

// ErrorCode classifies git failures.
type ErrorCode string

const (
	CodeNotARepo        ErrorCode = "NOT_A_REPO"
	CodeWorktreeExists  ErrorCode = "WORKTREE_EXISTS"
	CodeBranchExists    ErrorCode = "BRANCH_EXISTS"
	CodeBranchNotMerged ErrorCode = "BRANCH_NOT_MERGED"
	CodeBranchNotFound  ErrorCode = "BRANCH_NOT_FOUND"
	CodeUnknown         ErrorCode = "UNKNOWN"
)

// Error is returned by every Git operation that fails.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes every Error match ErrGitOperationFailed.
func (e *Error) Is(target error) bool {
	return target == apperrors.ErrGitOperationFailed
}

// CodeOf returns the ErrorCode of err, or CodeUnknown when err is not a git Error.
func CodeOf(err error) ErrorCode {
	var gitErr *Error
	if errors.As(err, &gitErr) {
		return gitErr.Code
	}
	return CodeUnknown
}

// Git is the repository capability used by the worktree workflow.
type Git interface {
	IsRepository(ctx context.Context) (bool, error)
	RepositoryRoot(ctx context.Context) (string, error)
	// MainWorktreeRoot returns the root of the main worktree even when called
	// from inside a linked worktree.
	MainWorktreeRoot(ctx context.Context) (string, error)
	ListWorktrees(ctx context.Context) ([]Worktree, error)
	ListBranches(ctx context.Context) ([]string, error)
	// ListRemoteBranches returns remote branch names without the remote prefix.
	ListRemoteBranches(ctx context.Context) ([]string, error)
	BranchExists(ctx context.Context, branch string) (bool, error)
	CurrentBranch(ctx context.Context) (string, error)
	DefaultBranch(ctx context.Context) (string, error)
	// CreateWorktree creates branch at path starting from base, or from HEAD
	// when base is empty.
	CreateWorktree(ctx context.Context, branch, path, base string) (*Worktree, error)
	CreateWorktreeFromRemote(ctx context.Context, branch, path, remote string) (*Worktree, error)
	// CheckoutWorktree checks out an existing local branch at path.
	CheckoutWorktree(ctx context.Context, branch, path string) (*Worktree, error)
	RemoveWorktree(ctx context.Context, path string) error
	DeleteBranch(ctx context.Context, branch string) error
	DeleteBranchForce(ctx context.Context, branch string) error
	// RemoteURL returns the URL of remote, or "" when it is not configured.
	RemoteURL(ctx context.Context, remote string) (string, error)
	// IsIgnored reports whether relativePath is ignored inside the worktree at dir.
	IsIgnored(ctx context.Context, dir, relativePath string) (bool, error)
}

// classify maps git's diagnostic output to an ErrorCode.
func classify(stderr string) ErrorCode {
	s := strings.ToLower(stderr)
	switch {
	case strings.Contains(s, "not a git repository"):
		return CodeNotARepo
	case strings.Contains(s, "a branch named") && strings.Contains(s, "already exists"):
		return CodeBranchExists
	case strings.Contains(s, "already checked out"),
		strings.Contains(s, "is already used by worktree"),
		strings.Contains(s, "already exists"):
		return CodeWorktreeExists
	case strings.Contains(s, "not fully merged"):
		return CodeBranchNotMerged
	case strings.Contains(s, "not found"),
		strings.Contains(s, "invalid reference"),
		strings.Contains(s, "not a valid object name"),
		strings.Contains(s, "not a valid branch name"):
		return CodeBranchNotFound
	default:
		return CodeUnknown
	}
}
