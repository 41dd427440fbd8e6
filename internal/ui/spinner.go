package ui

import (
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/x/term"
)

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// Spin runs action behind a spinner titled title. Without a terminal the
// action runs directly.
func Spin(title string, action func() error) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return action()
	}

	var actionErr error
	if err := spinner.New().
		Title(title).
		Action(func() { actionErr = action() }).
		Run(); err != nil {
		return err
	}
	return actionErr
}
