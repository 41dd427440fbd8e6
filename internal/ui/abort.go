package ui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/huh"
)

// ErrUserAborted means a wt prompt was dismissed. The root command reports it
// as "Cancelled" and exits 0.
var ErrUserAborted = errors.New("wt: prompt cancelled")

// NormalizeAbort maps the ways a prompt can be dismissed onto ErrUserAborted:
// Esc or Ctrl+C inside huh, Ctrl+D or a closed stdin (io.EOF), and a cancelled
// context. Other errors pass through.
func NormalizeAbort(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return ErrUserAborted
	default:
		return err
	}
}

func IsAbort(err error) bool {
	return errors.Is(err, ErrUserAborted)
}
