// Package pretty renders build outcomes, document trees and diffs for the
// terminal with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styles groups the lipgloss styles used by the formatters in this package.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Build outcome lines.
	FilePath  lipgloss.Style
	Arrow     lipgloss.Style
	Written   lipgloss.Style
	Unchanged lipgloss.Style
	Planned   lipgloss.Style

	// Document tree.
	Guide    lipgloss.Style
	NodeKind lipgloss.Style
	Attr     lipgloss.Style
	Preview  lipgloss.Style
	Label    lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 256 palette indexes.
const (
	red     = "9"
	green   = "10"
	yellow  = "11"
	blue    = "12"
	magenta = "13"
	cyan    = "14"
	grey    = "8"
	white   = "7"
)

// NewStyles returns the style set. The renderer is detached from any
// terminal: colorEnabled alone decides whether escapes are emitted.
func NewStyles(colorEnabled bool) *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	if colorEnabled {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	plain := r.NewStyle()
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }
	bold := plain.Bold(true)

	return &Styles{
		Error:   fg(red).Bold(true),
		Warning: fg(yellow).Bold(true),
		Info:    fg(blue).Bold(true),

		FilePath:  bold,
		Arrow:     fg(grey),
		Written:   fg(green),
		Unchanged: fg(grey),
		Planned:   fg(blue),

		Guide:    fg(grey),
		NodeKind: fg(cyan).Bold(true),
		Attr:     fg(yellow),
		Preview:  fg(white),
		Label:    fg(magenta).Italic(true),

		DiffHeader:  bold,
		DiffAdd:     fg(green),
		DiffRemove:  fg(red),
		DiffHunk:    fg(cyan),
		DiffContext: plain,

		SummaryTitle: bold,
		SummaryValue: plain,
		Success:      fg(green).Bold(true),
		Failure:      fg(red).Bold(true),

		Dim:  fg(grey),
		Bold: bold,
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never")
// against writer. Auto enables color only on a terminal with NO_COLOR unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

// TerminalWidth returns the column count of writer if it is a terminal,
// otherwise DefaultWidth.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return DefaultWidth
}
