package worktree

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/naoray/worktree-kit/internal/git"
)

// Entry is a worktree annotated for display.
type Entry struct {
	git.Worktree `yaml:",inline"`
	IsCurrent    bool `json:"isCurrent" yaml:"isCurrent"`
}

// List returns all worktrees of the repository, main first.
func List(ctx context.Context, g git.Git) ([]git.Worktree, error) {
	worktrees, err := g.ListWorktrees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing worktrees: %w", err)
	}
	return worktrees, nil
}

// ListEntries lists worktrees and marks the one containing the working
// directory.
func ListEntries(ctx context.Context, g git.Git) ([]Entry, error) {
	worktrees, err := List(ctx, g)
	if err != nil {
		return nil, err
	}

	current, _ := g.RepositoryRoot(ctx)
	current = canonical(current)

	entries := make([]Entry, len(worktrees))
	for i, wt := range worktrees {
		entries[i] = Entry{Worktree: wt, IsCurrent: current != "" && canonical(wt.Path) == current}
	}
	return entries, nil
}

// AvailableBranches returns branches a new worktree can be created for:
// local branches not checked out anywhere, and remote branches with no local
// counterpart.
func AvailableBranches(ctx context.Context, g git.Git) (local []string, remote []string, err error) {
	branches, err := g.ListBranches(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing branches: %w", err)
	}
	remoteBranches, err := g.ListRemoteBranches(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing remote branches: %w", err)
	}
	worktrees, err := g.ListWorktrees(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing worktrees: %w", err)
	}

	used := make(map[string]bool)
	for _, wt := range worktrees {
		used[wt.Branch] = true
	}
	isLocal := make(map[string]bool)
	for _, b := range branches {
		isLocal[b] = true
		if !used[b] {
			local = append(local, b)
		}
	}
	for _, b := range remoteBranches {
		if !isLocal[b] && !used[b] {
			remote = append(remote, b)
		}
	}
	return local, remote, nil
}

func canonical(path string) string {
	if path == "" {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}
