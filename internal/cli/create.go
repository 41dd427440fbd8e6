package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naoray/worktree-kit/internal/config"
	"github.com/naoray/worktree-kit/internal/hooks"
	"github.com/naoray/worktree-kit/internal/notify"
	"github.com/naoray/worktree-kit/internal/ui"
	"github.com/naoray/worktree-kit/internal/worktree"
)

var errBranchRequired = errors.New("branch name is required when not running in a terminal")

type createOptions struct {
	Branch string
	Base   string

	// Remote is the remote to track, set only when --remote was given.
	Remote string
}

var createCmd = &cobra.Command{
	Use:   "create [BRANCH]",
	Short: "Create a worktree with copied files and post-create hooks",
	Long: `Creates a worktree for BRANCH under the configured root directory, copies
the files listed in .worktreekitrc into it and runs the post-create hooks.

Arguments:
  BRANCH  Branch to create or check out

Without BRANCH an interactive picker offers a new branch, local branches
that are not checked out and remote branches.

When a new branch is created without --base, the defaultBase setting picks
the starting point: "current" uses HEAD, "default" uses the repository's
default branch and "ask" prompts for one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := createOptions{}
		if len(args) > 0 {
			opts.Branch = args[0]
		}
		opts.Base, _ = cmd.Flags().GetString("base")
		if cmd.Flags().Changed("remote") {
			opts.Remote = app.Settings.Remote
		}
		return runCreate(cmd.Context(), app, opts)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringP("base", "b", "", "Base branch for a new branch")
	createCmd.Flags().String("remote", "origin", "Create the branch from this remote's branch of the same name")
	createCmd.Flags().Lookup("remote").NoOptDefVal = "origin"
}

func runCreate(ctx context.Context, a *App, opts createOptions) error {
	in := worktree.CreateInput{
		Branch:     opts.Branch,
		BaseBranch: opts.Base,
		FromRemote: opts.Remote,
	}

	if in.Branch == "" {
		if !a.Interactive {
			return errBranchRequired
		}
		local, remote, err := worktree.AvailableBranches(ctx, a.Git)
		if err != nil {
			return err
		}
		branch, fromRemote, err := a.Prompter.SelectBranch(local, remote)
		if err != nil {
			return err
		}
		in.Branch = branch
		if fromRemote {
			in.FromRemote = a.Settings.Remote
		}
	}

	if in.FromRemote != "" {
		url, err := a.Git.RemoteURL(ctx, in.FromRemote)
		if err != nil {
			return err
		}
		if url == "" {
			return fmt.Errorf("remote %q is not configured", in.FromRemote)
		}
	}

	if in.FromRemote == "" && in.BaseBranch == "" {
		exists, err := a.Git.BranchExists(ctx, in.Branch)
		if err != nil {
			return err
		}
		in.Existing = exists
	}

	if in.FromRemote == "" && !in.Existing && in.BaseBranch == "" {
		base, err := chooseBase(ctx, a)
		if err != nil {
			return err
		}
		in.BaseBranch = base
	}

	var out *worktree.CreateOutput
	var copied []notify.Notification
	err := ui.Spin("Creating worktree...", func() error {
		var err error
		out, err = worktree.Create(ctx, in, a.worktreeDeps())
		if err != nil {
			return err
		}
		copied = worktree.CopyFiles(ctx, a.FS, out.FilesToCopy, worktree.CopyOptions{
			WorktreePath: out.Worktree.Path,
			Ignore:       a.Git,
			OnCopy: func(file worktree.FileToCopy) {
				a.Logger.Debug("copying", "src", file.Src, "dest", file.Dest)
			},
		})
		return nil
	})
	if err != nil {
		return err
	}

	a.Out.Notifications(out.Notifications)
	a.Out.Notifications(copied)

	if out.HookContext != nil {
		var result *hooks.Result
		title := fmt.Sprintf("Running %d post-create hook(s)...", len(out.HookCommands))
		_ = ui.Spin(title, func() error {
			result = hooks.RunWithOptions(ctx, a.Shell, out.HookCommands, *out.HookContext, hooks.Options{
				Timeout: a.Settings.HookTimeout,
				OnStart: func(index, total int, command string) {
					a.Logger.Debug("running hook", "index", index, "total", total, "command", command)
				},
			})
			return nil
		})
		if result != nil {
			a.Out.Notifications(result.Notifications)
		}
	}

	a.Out.Success("Created worktree for branch %s at %s", in.Branch, out.Worktree.Path)
	return nil
}

// chooseBase applies the configured defaultBase. An unreadable config counts
// as the default, which Create reports on its own.
func chooseBase(ctx context.Context, a *App) (string, error) {
	cfg := config.Default()
	if loaded, err := config.Load(ctx, a.Git, a.FS); err == nil {
		cfg = loaded.Config
	}

	switch cfg.DefaultBase {
	case config.DefaultBaseCurrent:
		return "", nil
	case config.DefaultBaseDefault:
		return a.Git.DefaultBranch(ctx)
	}

	if !a.Interactive {
		return "", nil
	}

	branches, err := a.Git.ListBranches(ctx)
	if err != nil {
		return "", err
	}
	current, _ := a.Git.CurrentBranch(ctx)
	defaultBranch, _ := a.Git.DefaultBranch(ctx)
	return a.Prompter.SelectBaseBranch(branches, current, defaultBranch)
}
