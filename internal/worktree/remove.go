package worktree

import (
	"context"
	"fmt"

	apperrors "github.com/naoray/worktree-kit/internal/errors"
	"github.com/naoray/worktree-kit/internal/git"
)

type RemoveInput struct {
	Branch string
}

type RemoveOutput struct {
	RemovedPath string
}

// Remove removes the worktree checked out on in.Branch. The main worktree is
// never removed.
func Remove(ctx context.Context, in RemoveInput, g git.Git) (*RemoveOutput, error) {
	wt, err := Find(ctx, g, in.Branch)
	if err != nil {
		return nil, err
	}

	if wt.IsMain {
		return nil, apperrors.ErrMainWorktree
	}

	if err := g.RemoveWorktree(ctx, wt.Path); err != nil {
		return nil, fmt.Errorf("removing worktree: %w", err)
	}

	return &RemoveOutput{RemovedPath: wt.Path}, nil
}

// Find returns the worktree checked out on branch.
func Find(ctx context.Context, g git.Git, branch string) (*git.Worktree, error) {
	worktrees, err := g.ListWorktrees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing worktrees: %w", err)
	}

	for _, wt := range worktrees {
		if wt.Branch == branch {
			return &wt, nil
		}
	}
	return nil, fmt.Errorf("%w: no worktree for branch %q", apperrors.ErrWorktreeNotFound, branch)
}

// DeleteBranch deletes branch, refusing unmerged work unless force is set.
// An unmerged branch yields a git error with code BRANCH_NOT_MERGED.
func DeleteBranch(ctx context.Context, g git.Git, branch string, force bool) error {
	if force {
		return g.DeleteBranchForce(ctx, branch)
	}
	return g.DeleteBranch(ctx, branch)
}
