// Package hooks runs the post-create commands configured for a repository.
package hooks

import (
	"context"
	"fmt"
	"time"

	"github.com/naoray/worktree-kit/internal/exec"
	"github.com/naoray/worktree-kit/internal/notify"
)

// Context describes the worktree a hook runs against.
type Context struct {
	WorktreePath string
	Branch       string
	RepoRoot     string
	BaseBranch   string
}

// Env returns the environment variables exported to every hook. BASE_BRANCH
// is only present when a base branch was given.
func (c Context) Env() map[string]string {
	env := map[string]string{
		"WORKTREE_PATH":   c.WorktreePath,
		"WORKTREE_BRANCH": c.Branch,
		"REPO_ROOT":       c.RepoRoot,
	}
	if c.BaseBranch != "" {
		env["BASE_BRANCH"] = c.BaseBranch
	}
	return env
}

// ExecutionResult is the outcome of one hook command.
type ExecutionResult struct {
	Command string
	Output  *exec.ExecuteResult
	Err     error
}

// Result collects the outcome of a hook run.
type Result struct {
	Notifications  []notify.Notification
	FailedCommands []string
	Results        []ExecutionResult
}

// Options tunes RunWithOptions.
type Options struct {
	// Timeout bounds each command. Zero uses the shell's default.
	Timeout time.Duration

	// OnStart is called before each command with its 1-based position.
	OnStart func(index, total int, command string)
}

// Run executes commands one after another in the worktree. A failing command
// is recorded and the remaining commands still run.
func Run(ctx context.Context, shell exec.Shell, commands []string, hookCtx Context) *Result {
	return RunWithOptions(ctx, shell, commands, hookCtx, Options{})
}

func RunWithOptions(ctx context.Context, shell exec.Shell, commands []string, hookCtx Context, opts Options) *Result {
	result := &Result{
		Notifications:  make([]notify.Notification, 0, len(commands)),
		FailedCommands: []string{},
		Results:        make([]ExecutionResult, 0, len(commands)),
	}
	env := hookCtx.Env()

	for i, command := range commands {
		if opts.OnStart != nil {
			opts.OnStart(i+1, len(commands), command)
		}

		out, err := shell.Execute(ctx, command, exec.ExecuteOptions{
			Dir:     hookCtx.WorktreePath,
			Env:     env,
			Timeout: opts.Timeout,
		})
		result.Results = append(result.Results, ExecutionResult{Command: command, Output: out, Err: err})

		if err != nil {
			result.FailedCommands = append(result.FailedCommands, command)
			result.Notifications = append(result.Notifications,
				notify.Warn(fmt.Sprintf(`Hook failed: "%s" - %s`, command, err.Error())))
			continue
		}
		result.Notifications = append(result.Notifications,
			notify.Info(fmt.Sprintf(`Hook completed: "%s"`, command)))
	}

	return result
}
