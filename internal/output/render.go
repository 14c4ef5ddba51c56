package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the usable width of f, or 80 when unknown.
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 10 {
		return 80
	}
	return width - 4
}

// RenderMarkdown renders content for a terminal of the given width.
func RenderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create terminal renderer: %w", err)
	}

	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// WriteAnalysis prints the final analysis. With width > 0 it is rendered as
// markdown; a rendering failure falls back to the raw text.
func WriteAnalysis(w io.Writer, text string, width int) error {
	text = strings.TrimSpace(text)
	if width > 0 {
		if rendered, err := RenderMarkdown(text, width); err == nil {
			_, err = io.WriteString(w, rendered)
			return err
		}
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
