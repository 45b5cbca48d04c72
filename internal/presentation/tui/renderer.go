package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// Printer writes command output. On a terminal markdown is rendered with
// glamour; anywhere else (pipes, files, tests) it is written as-is.
type Printer struct {
	w      io.Writer
	render func(string) (string, error)
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{w: w}
	if IsTerminal(w) {
		p.render = NewRenderer()
	}
	return p
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Markdown prints a markdown document.
func (p *Printer) Markdown(md string) error {
	if p.render != nil {
		out, err := p.render(md)
		if err == nil {
			md = out
		}
	}
	_, err := fmt.Fprint(p.w, md)
	return err
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
