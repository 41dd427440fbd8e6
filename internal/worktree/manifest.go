package worktree

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/naoray/worktree-kit/internal/filesystem"
	"github.com/naoray/worktree-kit/internal/notify"
)

// FileToCopy is one resolved copy instruction.
type FileToCopy struct {
	Src         string `json:"src" yaml:"src"`
	Dest        string `json:"dest" yaml:"dest"`
	IsDirectory bool   `json:"isDirectory" yaml:"isDirectory"`
}

const globChars = "*?[]{}"

// IsGlob reports whether a copy entry is a pattern rather than a literal path.
func IsGlob(entry string) bool {
	return strings.ContainsAny(entry, globChars)
}

// ResolveCopyManifest expands the configured copy entries into copy
// instructions from repoRoot into worktreePath. Patterns are expanded
// relative to repoRoot; a pattern without matches produces a warning.
// Sources appear at most once and the first occurrence wins.
func ResolveCopyManifest(entries []string, repoRoot, worktreePath string, fs filesystem.Filesystem) ([]FileToCopy, []notify.Notification) {
	files := []FileToCopy{}
	var notifications []notify.Notification
	seen := make(map[string]bool)

	add := func(rel string) {
		src := filepath.Join(repoRoot, rel)
		if seen[src] {
			return
		}
		seen[src] = true
		files = append(files, FileToCopy{
			Src:         src,
			Dest:        filepath.Join(worktreePath, rel),
			IsDirectory: fs.IsDirectory(src),
		})
	}

	for _, entry := range entries {
		if !IsGlob(entry) {
			add(entry)
			continue
		}

		matches, err := fs.Glob(entry, repoRoot)
		if err != nil {
			notifications = append(notifications, notify.Warn(fmt.Sprintf("Invalid pattern %q: %v", entry, err)))
			continue
		}
		if len(matches) == 0 {
			notifications = append(notifications, notify.Warn(fmt.Sprintf("No files matched pattern: %s", entry)))
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	return files, notifications
}

// ExcludeRootDir drops copy instructions whose source lies in rootDir, the
// directory holding worktrees. It only applies when rootDir sits strictly
// inside repoRoot.
func ExcludeRootDir(files []FileToCopy, repoRoot, rootDir string) []FileToCopy {
	rel, err := filepath.Rel(repoRoot, rootDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return files
	}
	kept := make([]FileToCopy, 0, len(files))
	for _, f := range files {
		if f.Src == rootDir || strings.HasPrefix(f.Src, rootDir+string(filepath.Separator)) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
