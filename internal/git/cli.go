package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/naoray/worktree-kit/internal/exec"
)

// CLI implements Git by running the git binary.
type CLI struct {
	dir       string
	commander exec.Commander
	logger    *log.Logger
}

// NewCLI returns a CLI that runs git from dir. An empty dir means the process
// working directory and a nil commander means the real one.
func NewCLI(dir string, commander exec.Commander, logger *log.Logger) *CLI {
	if commander == nil {
		commander = &exec.RealCommander{}
	}
	return &CLI{dir: dir, commander: commander, logger: logger}
}

// run executes git with args and returns trimmed stdout. Failures are
// classified from stderr.
func (g *CLI) run(ctx context.Context, args ...string) (string, error) {
	return g.runIn(ctx, g.dir, args...)
}

func (g *CLI) runIn(ctx context.Context, dir string, args ...string) (string, error) {
	if g.logger != nil {
		g.logger.Debug("git", "args", strings.Join(args, " "), "dir", dir)
	}

	out, err := g.commander.Run(ctx, exec.Request{Dir: dir, Name: "git", Args: args})
	if err != nil {
		stderr := strings.TrimSpace(string(out.Stderr))
		if g.logger != nil {
			g.logger.Debug("git failed", "args", strings.Join(args, " "), "stderr", stderr)
		}
		msg := stderr
		if msg == "" {
			msg = fmt.Sprintf("git %s: %v", strings.Join(args, " "), err)
		}
		return "", &Error{Code: classify(stderr), Message: msg, Err: err}
	}
	return out.Trimmed(), nil
}

func (g *CLI) IsRepository(ctx context.Context) (bool, error) {
	out, err := g.run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		if CodeOf(err) == CodeNotARepo {
			return false, nil
		}
		return false, err
	}
	return out == "true", nil
}

func (g *CLI) RepositoryRoot(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", notARepo(err)
	}
	return out, nil
}

func (g *CLI) MainWorktreeRoot(ctx context.Context) (string, error) {
	worktrees, err := g.ListWorktrees(ctx)
	if err != nil {
		return "", notARepo(err)
	}
	for _, wt := range worktrees {
		if wt.IsMain {
			return wt.Path, nil
		}
	}
	return "", &Error{Code: CodeNotARepo, Message: "Not inside a git repository"}
}

func notARepo(err error) error {
	if CodeOf(err) == CodeNotARepo {
		return &Error{Code: CodeNotARepo, Message: "Not inside a git repository", Err: err}
	}
	return err
}
