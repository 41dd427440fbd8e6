package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naoray/worktree-kit/internal/exec"
	"github.com/naoray/worktree-kit/internal/notify"
)

func newShell(mock *exec.MockCommander) exec.Shell {
	return exec.NewShellRunner(mock, nil, 0)
}

func TestContext_Env(t *testing.T) {
	hookCtx := Context{WorktreePath: "/wt/feature", Branch: "feature", RepoRoot: "/repo"}

	env := hookCtx.Env()
	assert.Equal(t, map[string]string{
		"WORKTREE_PATH":   "/wt/feature",
		"WORKTREE_BRANCH": "feature",
		"REPO_ROOT":       "/repo",
	}, env)
	_, hasBase := env["BASE_BRANCH"]
	assert.False(t, hasBase)

	hookCtx.BaseBranch = "develop"
	assert.Equal(t, "develop", hookCtx.Env()["BASE_BRANCH"])
}

func TestRun_ContinuesAfterFailure(t *testing.T) {
	mock := exec.NewMockCommander()
	mock.SetFailure("sh", []string{"-c", "fail"}, "boom", 1)

	result := Run(context.Background(), newShell(mock), []string{"fail", "ok"}, Context{WorktreePath: "/wt"})

	assert.Equal(t, []string{"fail"}, result.FailedCommands)
	require.Len(t, result.Notifications, 2)
	assert.Equal(t, notify.LevelWarn, result.Notifications[0].Level)
	assert.Equal(t, `Hook failed: "fail" - boom`, result.Notifications[0].Message)
	assert.Equal(t, notify.LevelInfo, result.Notifications[1].Level)
	assert.Equal(t, `Hook completed: "ok"`, result.Notifications[1].Message)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRun_RunsInWorktreeWithEnv(t *testing.T) {
	mock := exec.NewMockCommander()
	hookCtx := Context{WorktreePath: "/wt/feature", Branch: "feature", RepoRoot: "/repo", BaseBranch: "main"}

	Run(context.Background(), newShell(mock), []string{"make setup"}, hookCtx)

	call := mock.LastCall()
	require.NotNil(t, call)
	assert.Equal(t, "/wt/feature", call.Dir)
	assert.Equal(t, []string{"-c", "make setup"}, call.Args)
	assert.Equal(t, []string{
		"BASE_BRANCH=main",
		"REPO_ROOT=/repo",
		"WORKTREE_BRANCH=feature",
		"WORKTREE_PATH=/wt/feature",
	}, call.Env)
}

func TestRun_NoBaseBranchOmitsVariable(t *testing.T) {
	mock := exec.NewMockCommander()

	Run(context.Background(), newShell(mock), []string{"env"}, Context{WorktreePath: "/wt", Branch: "b", RepoRoot: "/r"})

	for _, kv := range mock.LastCall().Env {
		assert.NotContains(t, kv, "BASE_BRANCH")
	}
}

func TestRun_Sequential(t *testing.T) {
	mock := exec.NewMockCommander()

	Run(context.Background(), newShell(mock), []string{"first", "second", "third"}, Context{WorktreePath: "/wt"})

	require.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "first", mock.GetCall(0).Args[1])
	assert.Equal(t, "second", mock.GetCall(1).Args[1])
	assert.Equal(t, "third", mock.GetCall(2).Args[1])
}

func TestRun_Empty(t *testing.T) {
	result := Run(context.Background(), newShell(exec.NewMockCommander()), nil, Context{})

	assert.Empty(t, result.Notifications)
	assert.Empty(t, result.FailedCommands)
}

func TestRunWithOptions_Progress(t *testing.T) {
	mock := exec.NewMockCommander()
	var seen []string

	RunWithOptions(context.Background(), newShell(mock), []string{"a", "b"}, Context{WorktreePath: "/wt"}, Options{
		OnStart: func(index, total int, command string) {
			seen = append(seen, command)
			assert.Equal(t, 2, total)
			assert.Equal(t, len(seen), index)
		},
	})

	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestRun_RealShell(t *testing.T) {
	dir := t.TempDir()
	shell := exec.NewShellRunner(nil, nil, 0)

	result := Run(context.Background(), shell, []string{
		`test "$WORKTREE_BRANCH" = feature`,
		`test -z "${BASE_BRANCH+set}"`,
		"exit 3",
	}, Context{WorktreePath: dir, Branch: "feature", RepoRoot: dir})

	assert.Equal(t, []string{"exit 3"}, result.FailedCommands)
	assert.Equal(t, `Hook failed: "exit 3" - exited with code 3`, result.Notifications[2].Message)
}
