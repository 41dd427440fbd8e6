package git

import (
	"context"
	"fmt"
	"strings"
)

// ListWorktrees lists all worktrees for the repository. The first entry git
// reports is the main worktree.
func (g *CLI) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	out, err := g.run(ctx, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

// CreateWorktree creates a new branch checked out at path.
func (g *CLI) CreateWorktree(ctx context.Context, branch, path, base string) (*Worktree, error) {
	args := []string{"worktree", "add", "-b", branch, path}
	if base != "" {
		args = append(args, base)
	}
	if _, err := g.run(ctx, args...); err != nil {
		return nil, err
	}
	return g.describe(ctx, branch, path)
}

// CreateWorktreeFromRemote creates a local branch tracking remote/branch and
// checks it out at path.
func (g *CLI) CreateWorktreeFromRemote(ctx context.Context, branch, path, remote string) (*Worktree, error) {
	ref := fmt.Sprintf("%s/%s", remote, branch)
	if _, err := g.run(ctx, "worktree", "add", "--track", "-b", branch, path, ref); err != nil {
		return nil, err
	}
	return g.describe(ctx, branch, path)
}

func (g *CLI) CheckoutWorktree(ctx context.Context, branch, path string) (*Worktree, error) {
	if _, err := g.run(ctx, "worktree", "add", path, branch); err != nil {
		return nil, err
	}
	return g.describe(ctx, branch, path)
}

func (g *CLI) RemoveWorktree(ctx context.Context, path string) error {
	_, err := g.run(ctx, "worktree", "remove", path)
	return err
}

func (g *CLI) describe(ctx context.Context, branch, path string) (*Worktree, error) {
	head, err := g.runIn(ctx, path, "rev-parse", "HEAD")
	if err != nil {
		return nil, err
	}
	return &Worktree{Path: path, Branch: branch, Head: head}, nil
}

// parsePorcelain parses `git worktree list --porcelain`. Bare entries have no
// checkout and are skipped.
func parsePorcelain(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree
	bare := false
	first := true

	flush := func() {
		if current != nil && !bare {
			current.IsMain = first
			worktrees = append(worktrees, *current)
		}
		if current != nil {
			first = false
		}
		current = nil
		bare = false
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			continue
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "bare":
			bare = true
		}
	}
	flush()

	return worktrees
}
