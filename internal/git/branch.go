package git

import (
	"context"
	"strings"
)

// DefaultBranchCandidates are tried in order when the remote HEAD is unknown.
var DefaultBranchCandidates = []string{"main", "master", "develop"}

// ListBranches returns all local branch names.
func (g *CLI) ListBranches(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ListRemoteBranches returns remote branch names with the remote prefix
// stripped, deduplicated across remotes.
func (g *CLI) ListRemoteBranches(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "for-each-ref", "--format=%(refname)", "refs/remotes/")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var branches []string
	for _, ref := range splitLines(out) {
		name := strings.TrimPrefix(ref, "refs/remotes/")
		parts := strings.SplitN(name, "/", 2)
		if len(parts) != 2 || parts[1] == "HEAD" || seen[parts[1]] {
			continue
		}
		seen[parts[1]] = true
		branches = append(branches, parts[1])
	}
	return branches, nil
}

func (g *CLI) BranchExists(ctx context.Context, branch string) (bool, error) {
	_, err := g.run(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	if err != nil {
		if CodeOf(err) == CodeNotARepo {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// CurrentBranch returns the checked out branch, or "" when HEAD is detached.
func (g *CLI) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if out == "HEAD" {
		return "", nil
	}
	return out, nil
}

// DefaultBranch returns the branch origin/HEAD points at, falling back to the
// first existing candidate and finally the current branch.
func (g *CLI) DefaultBranch(ctx context.Context) (string, error) {
	if out, err := g.run(ctx, "symbolic-ref", "--short", "refs/remotes/origin/HEAD"); err == nil && out != "" {
		return strings.TrimPrefix(out, "origin/"), nil
	}

	for _, branch := range DefaultBranchCandidates {
		if ok, _ := g.BranchExists(ctx, branch); ok {
			return branch, nil
		}
	}

	return g.CurrentBranch(ctx)
}

func (g *CLI) DeleteBranch(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "branch", "-d", branch)
	return err
}

func (g *CLI) DeleteBranchForce(ctx context.Context, branch string) error {
	_, err := g.run(ctx, "branch", "-D", branch)
	return err
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
