package exec

import (
	"context"
	"fmt"
	"strings"
)

// MockCommander is a test double that records command calls and returns preset responses.
// Use this in tests to verify commands are executed correctly without actually running them.
type MockCommander struct {
	// Responses maps command keys to their preset responses.
	// The key is formatted as: "command arg1 arg2 ..."
	Responses map[string]CommandResponse

	// Calls records all commands that were executed.
	Calls []CommandCall
}

// CommandCall records details of a single command execution.
type CommandCall struct {
	Dir     string
	Env     []string
	Command string
	Args    []string
}

// CommandResponse defines the response for a specific command.
type CommandResponse struct {
	Output Output

	// Err is the error to return (nil for successful execution).
	Err error
}

func NewMockCommander() *MockCommander {
	return &MockCommander{
		Responses: make(map[string]CommandResponse),
		Calls:     make([]CommandCall, 0),
	}
}

// Run records the command call and returns the preset response if one exists.
// If no response is found for the key, it returns an empty Output and nil.
func (m *MockCommander) Run(ctx context.Context, req Request) (Output, error) {
	m.Calls = append(m.Calls, CommandCall{
		Dir:     req.Dir,
		Env:     req.Env,
		Command: req.Name,
		Args:    req.Args,
	})

	if resp, ok := m.Responses[req.String()]; ok {
		return resp.Output, resp.Err
	}
	return Output{}, nil
}

// SetResponse configures a successful response with the given stdout.
func (m *MockCommander) SetResponse(command string, args []string, stdout string) {
	m.Responses[buildCommandKey(command, args)] = CommandResponse{
		Output: Output{Stdout: []byte(stdout)},
	}
}

// SetFailure configures a failing response with the given stderr and exit code.
func (m *MockCommander) SetFailure(command string, args []string, stderr string, exitCode int) {
	m.Responses[buildCommandKey(command, args)] = CommandResponse{
		Output: Output{Stderr: []byte(stderr), ExitCode: exitCode},
		Err:    fmt.Errorf("exit status %d", exitCode),
	}
}

// GetCall returns the nth command call (0-indexed), or nil if out of range.
func (m *MockCommander) GetCall(n int) *CommandCall {
	if n < 0 || n >= len(m.Calls) {
		return nil
	}
	return &m.Calls[n]
}

// LastCall returns the most recent command call.
func (m *MockCommander) LastCall() *CommandCall {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}

func (m *MockCommander) CallCount() int {
	return len(m.Calls)
}

// WasCalled checks if a command with the given arguments was ever executed.
func (m *MockCommander) WasCalled(command string, args ...string) bool {
	key := buildCommandKey(command, args)
	for _, call := range m.Calls {
		if buildCommandKey(call.Command, call.Args) == key {
			return true
		}
	}
	return false
}

// Reset clears all recorded calls and responses.
func (m *MockCommander) Reset() {
	m.Calls = make([]CommandCall, 0)
	m.Responses = make(map[string]CommandResponse)
}

func buildCommandKey(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return fmt.Sprintf("%s %s", command, strings.Join(args, " "))
}
