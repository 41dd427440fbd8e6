package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/naoray/worktree-kit/internal/git"
)

const (
	optionNewBranch      = "__new__"
	optionRemoteBranches = "__remote__"
)

// SelectBranch asks which branch to create a worktree for. It offers a new
// branch, the available local branches and, when there are any, a submenu of
// remote branches. fromRemote is true when a remote branch was picked.
func SelectBranch(localBranches, remoteBranches []string) (branch string, fromRemote bool, err error) {
	var selected string

	options := []huh.Option[string]{
		huh.NewOption("Create new branch...", optionNewBranch),
	}
	for _, b := range localBranches {
		options = append(options, huh.NewOption(b, b))
	}
	if len(remoteBranches) > 0 {
		label := fmt.Sprintf("Remote branches... (%d available)", len(remoteBranches))
		options = append(options, huh.NewOption(label, optionRemoteBranches))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select branch for worktree").
				Description("Choose an existing branch or create a new one").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", false, NormalizeAbort(err)
	}

	switch selected {
	case optionNewBranch:
		name, err := PromptNewBranch()
		return name, false, err
	case optionRemoteBranches:
		name, err := SelectRemoteBranch(remoteBranches)
		return name, err == nil, err
	default:
		return selected, false, nil
	}
}

func SelectRemoteBranch(remoteBranches []string) (string, error) {
	var selected string

	options := make([]huh.Option[string], len(remoteBranches))
	for i, b := range remoteBranches {
		options[i] = huh.NewOption("↓ "+b, b)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select remote branch").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", NormalizeAbort(err)
	}

	return selected, nil
}

func PromptNewBranch() (string, error) {
	var name string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New branch name").
				Placeholder("feature/my-feature").
				Value(&name).
				Validate(ValidateBranchName),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", NormalizeAbort(err)
	}

	return strings.TrimSpace(name), nil
}

// ValidateBranchName rejects names git would refuse for a new branch.
func ValidateBranchName(s string) error {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return fmt.Errorf("branch name cannot be empty")
	case strings.HasPrefix(s, "-"):
		return fmt.Errorf("branch name cannot start with '-'")
	case strings.ContainsAny(s, " ~^:?*[\\"):
		return fmt.Errorf("branch name contains invalid characters")
	case strings.Contains(s, ".."), strings.HasSuffix(s, "/"), strings.HasSuffix(s, ".lock"):
		return fmt.Errorf("branch name is not a valid git ref")
	}
	return nil
}

// SelectBaseBranch asks which branch a new branch should start from. The
// current branch is listed first, then the default branch.
func SelectBaseBranch(branches []string, current, defaultBranch string) (string, error) {
	selected := current

	var options []huh.Option[string]
	seen := make(map[string]bool)
	addOption := func(b, suffix string) {
		if b == "" || seen[b] {
			return
		}
		seen[b] = true
		options = append(options, huh.NewOption(b+suffix, b))
	}

	addOption(current, " (current)")
	addOption(defaultBranch, " (default)")
	for _, b := range branches {
		addOption(b, "")
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select base branch").
				Description("The new branch starts from this branch").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", NormalizeAbort(err)
	}

	return selected, nil
}

// SelectWorktreeToRemove asks which linked worktree to remove. It returns nil
// without prompting when only the main worktree exists.
func SelectWorktreeToRemove(worktrees []git.Worktree) (*git.Worktree, error) {
	var removable []git.Worktree
	for _, wt := range worktrees {
		if !wt.IsMain {
			removable = append(removable, wt)
		}
	}

	if len(removable) == 0 {
		return nil, nil
	}

	options := make([]huh.Option[string], len(removable))
	for i, wt := range removable {
		label := fmt.Sprintf("%s  %s", wt.Branch, wt.Path)
		options[i] = huh.NewOption(label, wt.Path)
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select worktree to remove").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return nil, NormalizeAbort(err)
	}

	for _, wt := range removable {
		if wt.Path == selected {
			return &wt, nil
		}
	}

	return nil, fmt.Errorf("worktree not found")
}

func Confirm(message string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, NormalizeAbort(err)
	}

	return confirmed, nil
}

// Prompts exposes the interactive prompts as methods so callers can swap them
// for scripted answers.
type Prompts struct{}

func (Prompts) SelectBranch(localBranches, remoteBranches []string) (string, bool, error) {
	return SelectBranch(localBranches, remoteBranches)
}

func (Prompts) SelectBaseBranch(branches []string, current, defaultBranch string) (string, error) {
	return SelectBaseBranch(branches, current, defaultBranch)
}

func (Prompts) SelectWorktreeToRemove(worktrees []git.Worktree) (*git.Worktree, error) {
	return SelectWorktreeToRemove(worktrees)
}

func (Prompts) Confirm(message string) (bool, error) {
	return Confirm(message)
}
