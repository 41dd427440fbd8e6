package worktree

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/naoray/worktree-kit/internal/filesystem"
	"github.com/naoray/worktree-kit/internal/notify"
)

// IgnoreChecker reports whether a path is ignored by git in a worktree.
type IgnoreChecker interface {
	IsIgnored(ctx context.Context, dir, relativePath string) (bool, error)
}

// CopyOptions controls CopyFiles.
type CopyOptions struct {
	// WorktreePath is the destination worktree, used to report paths.
	WorktreePath string

	// Ignore, when set, is used to warn about copied files git would track.
	Ignore IgnoreChecker

	// OnCopy is called before each file is copied.
	OnCopy func(file FileToCopy)
}

// CopyFiles applies a manifest produced by Create. Individual failures become
// warnings so one unreadable file does not stop the rest.
func CopyFiles(ctx context.Context, fs filesystem.Filesystem, files []FileToCopy, opts CopyOptions) []notify.Notification {
	var notifications []notify.Notification

	for _, file := range files {
		rel := file.Dest
		if opts.WorktreePath != "" {
			if r, err := filepath.Rel(opts.WorktreePath, file.Dest); err == nil {
				rel = r
			}
		}

		if !fs.Exists(file.Src) {
			notifications = append(notifications, notify.Warn(fmt.Sprintf("Skipped %s: source does not exist", rel)))
			continue
		}

		if opts.OnCopy != nil {
			opts.OnCopy(file)
		}

		var err error
		if file.IsDirectory {
			err = fs.CopyDirectory(file.Src, file.Dest)
		} else {
			err = fs.CopyFile(file.Src, file.Dest)
		}
		if err != nil {
			notifications = append(notifications, notify.Warn(fmt.Sprintf("Failed to copy %s: %v", rel, err)))
			continue
		}

		if opts.Ignore != nil && opts.WorktreePath != "" {
			ignored, err := opts.Ignore.IsIgnored(ctx, opts.WorktreePath, rel)
			if err == nil && !ignored {
				notifications = append(notifications,
					notify.Warn(fmt.Sprintf("Copied %s is not ignored by git and may be committed", rel)))
			}
		}
	}

	return notifications
}
