package exec

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRealCommander_Run(t *testing.T) {
	commander := &RealCommander{}
	ctx := context.Background()

	output, err := commander.Run(ctx, Request{Dir: ".", Name: "echo", Args: []string{"hello"}})
	if err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
	if string(output.Stdout) != "hello\n" {
		t.Errorf("expected 'hello\\n', got: %s", string(output.Stdout))
	}
	if output.Trimmed() != "hello" {
		t.Errorf("expected trimmed 'hello', got: %s", output.Trimmed())
	}
}

func TestRealCommander_Run_SeparatesStderr(t *testing.T) {
	commander := &RealCommander{}

	output, err := commander.Run(context.Background(), Request{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err 1>&2; exit 3"},
	})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if output.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", output.ExitCode)
	}
	if string(output.Stdout) != "out\n" {
		t.Errorf("expected stdout 'out\\n', got: %q", string(output.Stdout))
	}
	if string(output.Stderr) != "err\n" {
		t.Errorf("expected stderr 'err\\n', got: %q", string(output.Stderr))
	}
}

func TestRealCommander_Run_Env(t *testing.T) {
	commander := &RealCommander{}

	output, err := commander.Run(context.Background(), Request{
		Name: "sh",
		Args: []string{"-c", "printf %s \"$WT_TEST_VALUE\""},
		Env:  []string{"WT_TEST_VALUE=42"},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if string(output.Stdout) != "42" {
		t.Errorf("expected '42', got: %q", string(output.Stdout))
	}
}

func TestRealCommander_Run_WithContextCancellation(t *testing.T) {
	commander := &RealCommander{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := commander.Run(ctx, Request{Dir: ".", Name: "sleep", Args: []string{"1"}})
	if err == nil {
		t.Error("expected error for cancelled context, got nil")
	}
}

func TestRealCommander_Run_CancelKillsProcessGroup(t *testing.T) {
	commander := &RealCommander{}
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := commander.Run(ctx, Request{Name: "sh", Args: []string{"-c", "sleep 6; echo done"}})
	if err == nil {
		t.Fatal("expected error for timed out command")
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("expected the child to be killed, Run took %s", elapsed)
	}
}

func TestRealCommander_Run_BackgroundChildDoesNotBlock(t *testing.T) {
	commander := &RealCommander{}

	start := time.Now()
	output, err := commander.Run(context.Background(), Request{Name: "sh", Args: []string{"-c", "sleep 6 & echo started"}})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if output.Trimmed() != "started" {
		t.Errorf("expected 'started', got: %q", output.Trimmed())
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("expected Run to return once sh exits, took %s", elapsed)
	}
}

func TestMockCommander_WasCalled(t *testing.T) {
	mock := NewMockCommander()

	mock.Run(context.Background(), Request{Dir: "/worktree", Name: "git", Args: []string{"status"}})

	if !mock.WasCalled("git", "status") {
		t.Error("expected WasCalled to return true for 'git status'")
	}
	if mock.WasCalled("git", "log") {
		t.Error("expected WasCalled to return false for 'git log'")
	}
}

func TestMockCommander_Reset(t *testing.T) {
	mock := NewMockCommander()
	ctx := context.Background()

	mock.Run(ctx, Request{Name: "echo", Args: []string{"hello"}})
	mock.Run(ctx, Request{Name: "echo", Args: []string{"world"}})

	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls before reset, got %d", mock.CallCount())
	}

	mock.Reset()

	if mock.CallCount() != 0 {
		t.Errorf("expected 0 calls after reset, got %d", mock.CallCount())
	}
	if len(mock.Responses) != 0 {
		t.Error("expected responses to be cleared")
	}
}

func TestMockCommander_NoResponse(t *testing.T) {
	mock := NewMockCommander()

	output, err := mock.Run(context.Background(), Request{Name: "unknown", Args: []string{"cmd"}})

	if err != nil {
		t.Errorf("expected no error for unset response, got: %v", err)
	}
	if output.Stdout != nil || output.ExitCode != 0 {
		t.Errorf("expected empty output for unset response, got: %+v", output)
	}
}

func TestMockCommander_Failure(t *testing.T) {
	mock := NewMockCommander()
	mock.SetFailure("git", []string{"branch", "-d", "x"}, "error: not fully merged", 1)

	output, err := mock.Run(context.Background(), Request{Name: "git", Args: []string{"branch", "-d", "x"}})

	if err == nil {
		t.Fatal("expected error")
	}
	if string(output.Stderr) != "error: not fully merged" {
		t.Errorf("unexpected stderr: %s", string(output.Stderr))
	}
	if output.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", output.ExitCode)
	}
}

func TestMockCommander_ErrorResponse(t *testing.T) {
	mock := NewMockCommander()
	expectedErr := errors.New("command failed")
	mock.Responses["failing cmd"] = CommandResponse{Err: expectedErr}

	_, err := mock.Run(context.Background(), Request{Name: "failing", Args: []string{"cmd"}})

	if err != expectedErr {
		t.Errorf("expected error %v, got: %v", expectedErr, err)
	}
}
