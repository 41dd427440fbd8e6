package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/naoray/worktree-kit/internal/config"
	apperrors "github.com/naoray/worktree-kit/internal/errors"
	"github.com/naoray/worktree-kit/internal/ui"
)

// app is set by the root command before any subcommand runs.
var app *App

var rootCmd = &cobra.Command{
	Use:   "wt",
	Short: "Git worktrees with copied config and post-create hooks",
	Long: `wt creates git worktrees in a shared directory next to your repository,
copies untracked config files such as .env into them and runs post-create
hooks, all driven by a .worktreekitrc file at the repository root.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := OpenApp(cmd)
		if err != nil {
			return err
		}
		app = a
		return nil
	},
}

// Execute runs the command line and reports a fatal error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	printer := ui.NewPrinter(os.Stderr, app == nil || colorEnabled(app.Settings))
	if ui.IsAbort(err) {
		printer.Info("Cancelled")
	} else {
		printer.Error("%s", err)
	}
	return err
}

// ExitCode maps err to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil, ui.IsAbort(err):
		return config.ExitSuccess
	case errors.Is(err, apperrors.ErrConfigNotFound),
		errors.Is(err, apperrors.ErrInvalidJSON),
		errors.Is(err, apperrors.ErrInvalidConfig):
		return config.ExitConfigurationError
	case errors.Is(err, apperrors.ErrWorktreeNotFound):
		return config.ExitWorktreeNotFound
	case errors.Is(err, apperrors.ErrMainWorktree):
		return config.ExitInvalidArguments
	case errors.Is(err, apperrors.ErrGitOperationFailed),
		errors.Is(err, apperrors.ErrNotARepository):
		return config.ExitGitOperationFailed
	default:
		return config.ExitGeneralError
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}
