// Package exec provides the process-spawning layer used by the git and shell
// adapters. The Commander abstraction allows tests to substitute canned output
// for real processes.
package exec

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed. Grandchildren that inherited the pipes would otherwise
// keep Wait blocked.
const waitDelay = 500 * time.Millisecond

// Request describes a single process invocation.
type Request struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds extra KEY=VALUE entries appended to the parent environment.
	Env []string

	Name string
	Args []string
}

// String renders the request as a command line, used for logging and as the
// MockCommander lookup key.
func (r Request) String() string {
	return buildCommandKey(r.Name, r.Args)
}

// Output is what a finished process produced.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Commander defines the interface for executing commands.
// Implementations can provide real command execution or mock behavior for testing.
type Commander interface {
	// Run executes the request and returns its captured output. A non-zero
	// exit status is reported both through Output.ExitCode and a non-nil error.
	Run(ctx context.Context, req Request) (Output, error)
}

// RealCommander executes commands using the real operating system.
type RealCommander struct{}

func (c *RealCommander) Run(ctx context.Context, req Request) (Output, error) {
	cmd := exec.CommandContext(ctx, req.Name, req.Args...)
	cmd.Dir = req.Dir
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)
	if len(req.Env) > 0 {
		cmd.Env = append(os.Environ(), req.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(err, exec.ErrWaitDelay) {
		// Exited cleanly; a background child still holds the pipes.
		err = nil
	}
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		} else {
			out.ExitCode = -1
		}
	}
	return out, err
}

// Trimmed returns stdout with surrounding whitespace removed.
func (o Output) Trimmed() string {
	return strings.TrimSpace(string(o.Stdout))
}
