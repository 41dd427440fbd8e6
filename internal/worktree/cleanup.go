package worktree

import (
	"context"
	"fmt"

	"github.com/naoray/worktree-kit/internal/config"
	"github.com/naoray/worktree-kit/internal/notify"
)

// CleanupRootDir removes the configured worktree root directory once the last
// worktree inside it is gone. Without a loadable config nothing is removed.
func CleanupRootDir(ctx context.Context, deps Deps) []notify.Notification {
	loaded, err := config.Load(ctx, deps.Git, deps.FS)
	if err != nil {
		debug(deps.Logger, "skipping root cleanup", "reason", err)
		return nil
	}

	mainRoot, err := deps.Git.MainWorktreeRoot(ctx)
	if err != nil {
		return nil
	}

	rootDir := ResolvePath(mainRoot, loaded.Config.RootDir, "")
	if !deps.FS.IsDirectory(rootDir) {
		return nil
	}

	empty, err := deps.FS.IsDirectoryEmpty(rootDir)
	if err != nil || !empty {
		return nil
	}

	if err := deps.FS.RemoveDirectory(rootDir); err != nil {
		return []notify.Notification{notify.Warn(fmt.Sprintf("Could not remove empty directory %s: %v", rootDir, err))}
	}
	return []notify.Notification{notify.Info(fmt.Sprintf("Removed empty worktree directory %s", rootDir))}
}
