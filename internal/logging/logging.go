// Package logging configures the diagnostic logger used by wt. Output goes to
// stderr and is silent unless verbose mode is enabled.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Category tags log lines with the subsystem that produced them.
type Category string

const (
	CategoryGit   Category = "git"
	CategoryShell Category = "shell"
	CategoryFS    Category = "fs"
	CategoryApp   Category = "app"
)

// New returns a logger writing to w. Debug lines are only emitted when verbose
// is set; otherwise only warnings and errors get through.
func New(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "wt",
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05.000",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// For returns a child logger tagged with the given category.
func For(logger *log.Logger, category Category) *log.Logger {
	if logger == nil {
		logger = Discard()
	}
	return logger.With("category", string(category))
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
