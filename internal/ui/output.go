package ui

import (
	"fmt"
	"io"

	"github.com/naoray/worktree-kit/internal/notify"
)

// Printer writes styled command output.
type Printer struct {
	out    io.Writer
	styles *Styles
}

func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, styles: NewStyles(out, color)}
}

func (p *Printer) Styles() *Styles {
	return p.styles
}

func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.Success.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.Info.Render("• "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Warn(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.Warn.Render("! "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.Error.Render("✗ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Println(s string) {
	fmt.Fprintln(p.out, s)
}

// Notifications prints notifications in order, warnings and info styled apart.
func (p *Printer) Notifications(ns []notify.Notification) {
	for _, n := range ns {
		switch n.Level {
		case notify.LevelWarn:
			p.Warn("%s", n.Message)
		default:
			p.Info("%s", n.Message)
		}
	}
}
