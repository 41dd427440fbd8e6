package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naoray/worktree-kit/internal/git"
	"github.com/naoray/worktree-kit/internal/ui"
	"github.com/naoray/worktree-kit/internal/worktree"
)

type removeOptions struct {
	Branch       string
	DeleteBranch bool
	Force        bool
	Yes          bool
}

var removeCmd = &cobra.Command{
	Use:     "remove [BRANCH]",
	Aliases: []string{"rm"},
	Short:   "Remove a worktree",
	Long: `Removes the worktree checked out on BRANCH. The main worktree is never
removed.

Arguments:
  BRANCH  Branch of the worktree to remove

Without BRANCH an interactive picker lists the removable worktrees. The
branch itself can be deleted too; unmerged branches need --force or a
confirmation. Once the last worktree is gone the empty root directory is
removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := removeOptions{}
		if len(args) > 0 {
			opts.Branch = args[0]
		}
		opts.DeleteBranch, _ = cmd.Flags().GetBool("delete-branch")
		opts.Force, _ = cmd.Flags().GetBool("force")
		opts.Yes, _ = cmd.Flags().GetBool("yes")
		return runRemove(cmd.Context(), app, opts)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolP("delete-branch", "d", false, "Also delete the branch")
	removeCmd.Flags().BoolP("force", "f", false, "Delete the branch even if it is not merged")
	removeCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompts")
}

func runRemove(ctx context.Context, a *App, opts removeOptions) error {
	branch := opts.Branch
	ask := a.Interactive && !opts.Yes

	if branch == "" {
		if !a.Interactive {
			return errBranchRequired
		}
		worktrees, err := worktree.List(ctx, a.Git)
		if err != nil {
			return err
		}
		selected, err := a.Prompter.SelectWorktreeToRemove(worktrees)
		if err != nil {
			return err
		}
		if selected == nil {
			a.Out.Info("No worktrees to remove")
			return nil
		}
		branch = selected.Branch
	}

	deleteBranch := opts.DeleteBranch
	if ask {
		ok, err := a.Prompter.Confirm(fmt.Sprintf("Remove worktree %q?", branch))
		if err != nil {
			return err
		}
		if !ok {
			a.Out.Info("Cancelled")
			return nil
		}
		if !deleteBranch {
			deleteBranch, err = a.Prompter.Confirm(fmt.Sprintf("Also delete branch %q?", branch))
			if err != nil {
				return err
			}
		}
	}

	var out *worktree.RemoveOutput
	err := ui.Spin("Removing worktree...", func() error {
		var err error
		out, err = worktree.Remove(ctx, worktree.RemoveInput{Branch: branch}, a.Git)
		return err
	})
	if err != nil {
		return err
	}
	a.Out.Success("Removed worktree at %s", out.RemovedPath)

	if deleteBranch {
		if err := removeBranch(ctx, a, branch, opts.Force, ask); err != nil {
			return err
		}
	}

	a.Out.Notifications(worktree.CleanupRootDir(ctx, a.worktreeDeps()))
	return nil
}

// removeBranch deletes branch after its worktree is gone. Failing to delete
// it is reported but does not fail the removal.
func removeBranch(ctx context.Context, a *App, branch string, force, ask bool) error {
	err := worktree.DeleteBranch(ctx, a.Git, branch, force)
	if err == nil {
		a.Out.Success("Deleted branch %s", branch)
		return nil
	}

	if git.CodeOf(err) != git.CodeBranchNotMerged {
		a.Out.Warn("Failed to delete branch %s: %v", branch, err)
		return nil
	}

	if !ask {
		a.Out.Warn("Branch %s is not fully merged. Use --force to delete it", branch)
		return nil
	}

	ok, err := a.Prompter.Confirm(fmt.Sprintf("Branch %q is not merged. Force delete?", branch))
	if err != nil {
		return err
	}
	if !ok {
		a.Out.Info("Branch was not deleted")
		return nil
	}

	if err := worktree.DeleteBranch(ctx, a.Git, branch, true); err != nil {
		a.Out.Warn("Failed to delete branch %s: %v", branch, err)
		return nil
	}
	a.Out.Success("Deleted branch %s", branch)
	return nil
}
