package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/naoray/worktree-kit/internal/errors"
	"github.com/naoray/worktree-kit/internal/git"
	"github.com/naoray/worktree-kit/internal/worktree"
)

var cdCmd = &cobra.Command{
	Use:   "cd [WORKTREE]",
	Short: "Print the path to a worktree for shell navigation",
	Long: `Prints the path to a worktree, enabling easy shell navigation.

Arguments:
  WORKTREE  Branch name, folder name or an unambiguous part of either.
            If omitted, lists all worktrees

Usage with shell:
  cd $(wt cd feature-auth)

  # Or create a shell function in ~/.zshrc:
  wcd() { cd $(wt cd "$1"); }`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		shell, _ := cmd.Flags().GetBool("shell")
		return runCd(cmd.Context(), app, query, shell)
	},
}

func init() {
	rootCmd.AddCommand(cdCmd)

	cdCmd.Flags().Bool("shell", false, "Output as shell command (cd /path)")
}

func runCd(ctx context.Context, a *App, query string, shell bool) error {
	worktrees, err := worktree.List(ctx, a.Git)
	if err != nil {
		return err
	}

	if query == "" {
		listWorktreesForCd(a.Stdout, worktrees)
		return nil
	}

	path, err := findWorktreePath(worktrees, query)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.Stdout, formatCdOutput(path, shell))
	return nil
}

// findWorktreePath finds a worktree by folder name, branch name, or partial match
func findWorktreePath(worktrees []git.Worktree, query string) (string, error) {
	for _, wt := range worktrees {
		if filepath.Base(wt.Path) == query || wt.Branch == query {
			return wt.Path, nil
		}
	}

	var matches []git.Worktree
	queryLower := strings.ToLower(query)
	for _, wt := range worktrees {
		folderLower := strings.ToLower(filepath.Base(wt.Path))
		branchLower := strings.ToLower(wt.Branch)
		if strings.Contains(folderLower, queryLower) || strings.Contains(branchLower, queryLower) {
			matches = append(matches, wt)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w matching '%s'", apperrors.ErrWorktreeNotFound, query)
	case 1:
		return matches[0].Path, nil
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Branch
	}
	return "", fmt.Errorf("multiple worktrees match '%s': %s", query, strings.Join(names, ", "))
}

func formatCdOutput(path string, shell bool) string {
	if shell {
		return "cd " + path
	}
	return path
}

func listWorktreesForCd(w io.Writer, worktrees []git.Worktree) {
	if len(worktrees) == 0 {
		fmt.Fprintln(w, "No worktrees found")
		return
	}

	fmt.Fprintln(w, "Available worktrees:")
	for _, wt := range worktrees {
		folderName := filepath.Base(wt.Path)
		if folderName == wt.Branch {
			fmt.Fprintf(w, "  %s\n", folderName)
		} else {
			fmt.Fprintf(w, "  %s (%s)\n", folderName, wt.Branch)
		}
	}
}
