package exec

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultShellTimeout bounds a single shell command when no timeout is given.
const DefaultShellTimeout = 5 * time.Minute

// ErrorCode classifies shell execution failures.
type ErrorCode string

const (
	CodeExecutionFailed ErrorCode = "EXECUTION_FAILED"
	CodeTimeout         ErrorCode = "TIMEOUT"
	CodeUnknown         ErrorCode = "UNKNOWN"
)

// Error is returned by Shell.Execute when a command does not succeed.
type Error struct {
	Code     ErrorCode
	Message  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExecuteOptions controls a single shell invocation.
type ExecuteOptions struct {
	Dir     string
	Env     map[string]string
	Timeout time.Duration
}

// ExecuteResult is the output of a successful shell command.
type ExecuteResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Shell runs command strings through a POSIX shell.
type Shell interface {
	Execute(ctx context.Context, command string, opts ExecuteOptions) (*ExecuteResult, error)
}

// ShellRunner implements Shell on top of a Commander using `sh -c`.
type ShellRunner struct {
	commander      Commander
	logger         *log.Logger
	defaultTimeout time.Duration
}

// NewShellRunner creates a ShellRunner. A nil commander uses RealCommander and a
// non-positive timeout uses DefaultShellTimeout.
func NewShellRunner(commander Commander, logger *log.Logger, timeout time.Duration) *ShellRunner {
	if commander == nil {
		commander = &RealCommander{}
	}
	if timeout <= 0 {
		timeout = DefaultShellTimeout
	}
	return &ShellRunner{commander: commander, logger: logger, defaultTimeout: timeout}
}

func (s *ShellRunner) Execute(ctx context.Context, command string, opts ExecuteOptions) (*ExecuteResult, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = s.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.debug("executing", "command", command, "dir", opts.Dir, "timeout", timeout)

	out, err := s.commander.Run(ctx, Request{
		Dir:  opts.Dir,
		Env:  envList(opts.Env),
		Name: "sh",
		Args: []string{"-c", command},
	})

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.debug("timed out", "command", command)
		return nil, &Error{
			Code:    CodeTimeout,
			Message: fmt.Sprintf("command timed out after %s", timeout),
			Err:     ctx.Err(),
		}
	}

	stderr := strings.TrimSpace(string(out.Stderr))
	if err != nil || out.ExitCode != 0 {
		if out.ExitCode > 0 {
			s.debug("failed", "command", command, "exit", out.ExitCode)
			msg := stderr
			if msg == "" {
				msg = fmt.Sprintf("exited with code %d", out.ExitCode)
			}
			return nil, &Error{
				Code:     CodeExecutionFailed,
				Message:  msg,
				ExitCode: out.ExitCode,
				Stderr:   stderr,
				Err:      err,
			}
		}
		msg := "command could not be executed"
		if err != nil {
			msg = err.Error()
		}
		return nil, &Error{Code: CodeUnknown, Message: msg, ExitCode: out.ExitCode, Stderr: stderr, Err: err}
	}

	s.debug("completed", "command", command)
	return &ExecuteResult{
		Stdout:   string(out.Stdout),
		Stderr:   string(out.Stderr),
		ExitCode: out.ExitCode,
	}, nil
}

func (s *ShellRunner) debug(msg string, keyvals ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}

// envList converts an env map into sorted KEY=VALUE entries.
func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]string, 0, len(keys))
	for _, k := range keys {
		list = append(list, k+"="+env[k])
	}
	return list
}
