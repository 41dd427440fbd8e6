package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/naoray/worktree-kit/internal/config"
	"github.com/naoray/worktree-kit/internal/exec"
	"github.com/naoray/worktree-kit/internal/filesystem"
	"github.com/naoray/worktree-kit/internal/git"
	"github.com/naoray/worktree-kit/internal/logging"
	"github.com/naoray/worktree-kit/internal/ui"
)

const testRepoRoot = "/project"

type testEnv struct {
	app      *App
	git      *git.Fake
	fs       *filesystem.Memory
	shell    *exec.MockCommander
	out      *bytes.Buffer
	prompter *scriptedPrompter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	g := git.NewFake(testRepoRoot)
	fs := filesystem.NewMemory(testRepoRoot)
	commander := exec.NewMockCommander()
	out := &bytes.Buffer{}
	prompter := &scriptedPrompter{t: t}

	app := &App{
		Settings: &config.Settings{
			HookTimeout: time.Minute,
			Remote:      "origin",
			Output:      "text",
		},
		Logger:   logging.Discard(),
		Git:      g,
		FS:       fs,
		Shell:    exec.NewShellRunner(commander, nil, 0),
		Prompter: prompter,
		Stdout:   out,
		Out:      ui.NewPrinter(out, false),
	}

	return &testEnv{app: app, git: g, fs: fs, shell: commander, out: out, prompter: prompter}
}

func (e *testEnv) writeConfig(content string) {
	e.fs.AddFile(testRepoRoot+"/"+config.FileName, content)
}

// scriptedPrompter answers prompts from preset values and records what was asked.
type scriptedPrompter struct {
	t *testing.T

	branch     string
	fromRemote bool
	base       string
	remove     *git.Worktree
	confirms   []bool

	asked []string
}

func (p *scriptedPrompter) SelectBranch(local, remote []string) (string, bool, error) {
	p.asked = append(p.asked, "branch")
	return p.branch, p.fromRemote, nil
}

func (p *scriptedPrompter) SelectBaseBranch(branches []string, current, defaultBranch string) (string, error) {
	p.asked = append(p.asked, "base")
	return p.base, nil
}

func (p *scriptedPrompter) SelectWorktreeToRemove(worktrees []git.Worktree) (*git.Worktree, error) {
	p.asked = append(p.asked, "remove")
	return p.remove, nil
}

func (p *scriptedPrompter) Confirm(message string) (bool, error) {
	p.asked = append(p.asked, message)
	if len(p.confirms) == 0 {
		p.t.Fatalf("unexpected confirmation: %s", message)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}
