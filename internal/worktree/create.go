package worktree

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/naoray/worktree-kit/internal/config"
	apperrors "github.com/naoray/worktree-kit/internal/errors"
	"github.com/naoray/worktree-kit/internal/filesystem"
	"github.com/naoray/worktree-kit/internal/git"
	"github.com/naoray/worktree-kit/internal/hooks"
	"github.com/naoray/worktree-kit/internal/notify"
)

// Deps are the capabilities the worktree workflows run against.
type Deps struct {
	Git    git.Git
	FS     filesystem.Filesystem
	Logger *log.Logger
}

// CreateInput selects the branch to create and where it starts from.
type CreateInput struct {
	Branch string

	// BaseBranch is the starting point. Empty means the current HEAD.
	BaseBranch string

	// FromRemote, when set, names the remote whose branch of the same name
	// the new branch tracks. BaseBranch is ignored.
	FromRemote string

	// Existing checks out the local branch Branch instead of creating it.
	Existing bool
}

// CreateOutput is everything the caller needs to finish a creation: the
// files to copy and the hooks to run have not been acted on yet.
type CreateOutput struct {
	Worktree      git.Worktree
	Config        *config.WorktreeConfig
	Notifications []notify.Notification
	FilesToCopy   []FileToCopy
	// HookContext is nil when there are no hook commands.
	HookContext  *hooks.Context
	HookCommands []string
}

// Create creates the worktree for in.Branch under the configured root
// directory. A missing or invalid config is not fatal: defaults are used and a
// warning is returned.
func Create(ctx context.Context, in CreateInput, deps Deps) (*CreateOutput, error) {
	if in.Branch == "" {
		return nil, errors.New("branch name is required")
	}

	repoRoot, err := deps.Git.RepositoryRoot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNotARepository, err)
	}

	var notifications []notify.Notification

	cfg := config.Default()
	loaded, err := config.Load(ctx, deps.Git, deps.FS)
	if err != nil {
		debug(deps.Logger, "using default config", "reason", err)
		notifications = append(notifications,
			notify.Warn(fmt.Sprintf("No valid %s found, using defaults. Run 'wt init' to create one.", config.FileName)))
	} else {
		cfg = loaded.Config
	}

	path := ResolvePath(repoRoot, cfg.RootDir, in.Branch)
	debug(deps.Logger, "creating worktree", "branch", in.Branch, "path", path, "base", in.BaseBranch, "remote", in.FromRemote)

	var wt *git.Worktree
	switch {
	case in.FromRemote != "":
		wt, err = deps.Git.CreateWorktreeFromRemote(ctx, in.Branch, path, in.FromRemote)
	case in.Existing:
		wt, err = deps.Git.CheckoutWorktree(ctx, in.Branch, path)
	default:
		wt, err = deps.Git.CreateWorktree(ctx, in.Branch, path, in.BaseBranch)
	}
	if err != nil {
		return nil, fmt.Errorf("creating worktree: %w", err)
	}

	files, warnings := ResolveCopyManifest(cfg.Copy, repoRoot, wt.Path, deps.FS)
	files = ExcludeRootDir(files, repoRoot, resolveRootDir(repoRoot, cfg.RootDir))
	notifications = append(notifications, warnings...)

	out := &CreateOutput{
		Worktree:      *wt,
		Config:        cfg,
		Notifications: notifications,
		FilesToCopy:   files,
		HookCommands:  cfg.Hooks.PostCreate,
	}
	if len(cfg.Hooks.PostCreate) > 0 {
		out.HookContext = &hooks.Context{
			WorktreePath: wt.Path,
			Branch:       in.Branch,
			RepoRoot:     repoRoot,
			BaseBranch:   in.BaseBranch,
		}
	}
	return out, nil
}

// ResolvePath returns the worktree location for branch. rootDir is taken
// relative to repoRoot unless it is absolute.
func ResolvePath(repoRoot, rootDir, branch string) string {
	return filepath.Join(resolveRootDir(repoRoot, rootDir), branch)
}

func resolveRootDir(repoRoot, rootDir string) string {
	if filepath.IsAbs(rootDir) {
		return filepath.Clean(rootDir)
	}
	return filepath.Join(repoRoot, rootDir)
}

func debug(logger *log.Logger, msg string, keyvals ...interface{}) {
	if logger != nil {
		logger.Debug(msg, keyvals...)
	}
}
