package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naoray/worktree-kit/internal/config"
	apperrors "github.com/naoray/worktree-kit/internal/errors"
	"github.com/naoray/worktree-kit/internal/exec"
	"github.com/naoray/worktree-kit/internal/filesystem"
	"github.com/naoray/worktree-kit/internal/git"
	"github.com/naoray/worktree-kit/internal/logging"
	"github.com/naoray/worktree-kit/internal/ui"
	"github.com/naoray/worktree-kit/internal/worktree"
)

// Prompter asks the user for the choices commands cannot infer.
type Prompter interface {
	SelectBranch(localBranches, remoteBranches []string) (branch string, fromRemote bool, err error)
	SelectBaseBranch(branches []string, current, defaultBranch string) (string, error)
	SelectWorktreeToRemove(worktrees []git.Worktree) (*git.Worktree, error)
	Confirm(message string) (bool, error)
}

// App holds the settings and capabilities shared by every command.
type App struct {
	Settings *config.Settings
	Logger   *log.Logger
	Git      git.Git
	FS       filesystem.Filesystem
	Shell    exec.Shell
	Prompter Prompter

	// Stdout receives machine readable output; Out renders human output.
	Stdout io.Writer
	Out    *ui.Printer

	// Interactive is false when prompts cannot be shown.
	Interactive bool
}

// OpenApp loads the user settings, honouring flags set on cmd, and wires the
// real git, filesystem and shell.
func OpenApp(cmd *cobra.Command) (*App, error) {
	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		dir = ""
	}

	settings, err := config.LoadSettings(dir, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}

	logger := logging.New(cmd.ErrOrStderr(), settings.Verbose)
	commander := &exec.RealCommander{}
	stdout := cmd.OutOrStdout()

	return &App{
		Settings:    settings,
		Logger:      logger,
		Git:         git.NewCLI("", commander, logging.For(logger, logging.CategoryGit)),
		FS:          filesystem.NewOS(logging.For(logger, logging.CategoryFS)),
		Shell:       exec.NewShellRunner(commander, logging.For(logger, logging.CategoryShell), settings.HookTimeout),
		Prompter:    ui.Prompts{},
		Stdout:      stdout,
		Out:         ui.NewPrinter(stdout, colorEnabled(settings)),
		Interactive: ui.IsInteractive(),
	}, nil
}

func (a *App) worktreeDeps() worktree.Deps {
	return worktree.Deps{
		Git:    a.Git,
		FS:     a.FS,
		Logger: logging.For(a.Logger, logging.CategoryApp),
	}
}

func colorEnabled(settings *config.Settings) bool {
	if settings != nil && settings.NoColor {
		return false
	}
	_, noColor := os.LookupEnv("NO_COLOR")
	return !noColor
}
