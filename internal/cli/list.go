package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/naoray/worktree-kit/internal/worktree"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all worktrees",
	Long: `Lists every worktree of the repository, the main worktree first. The
worktree you are in is marked as current.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), app, app.Settings.Output)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")
}

func runList(ctx context.Context, a *App, output string) error {
	entries, err := worktree.ListEntries(ctx, a.Git)
	if err != nil {
		return err
	}

	switch output {
	case "json":
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(a.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(entries) == 0 {
		a.Out.Info("No worktrees found")
		return nil
	}

	styles := a.Out.Styles()
	for _, e := range entries {
		icon, name := "◇", e.Branch
		if name == "" {
			name = "(detached)"
		}
		if e.IsCurrent {
			icon = styles.Success.Render("◆")
			name = styles.Success.Render(name)
		} else {
			name = styles.Branch.Render(name)
		}

		var badges []string
		if e.IsMain {
			badges = append(badges, styles.Info.Render("(main)"))
		}
		if e.IsCurrent {
			badges = append(badges, styles.Success.Render("(current)"))
		}

		line := fmt.Sprintf("%s %s", icon, name)
		if len(badges) > 0 {
			line += " " + strings.Join(badges, " ")
		}
		a.Out.Println(line)
		a.Out.Println(styles.Muted.Render("    " + e.Path))
	}
	return nil
}
