package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/naoray/worktree-kit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .worktreekitrc template",
	Long: `Writes a starter .worktreekitrc at the root of the main worktree. The file
is shared by every worktree of the repository.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return runInit(cmd.Context(), app, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
}

func runInit(ctx context.Context, a *App, force bool) error {
	path, err := config.Init(ctx, a.Git, a.FS, config.InitOptions{Force: force})
	if err != nil {
		return err
	}
	a.Out.Success("Created config at %s", path)
	return nil
}
