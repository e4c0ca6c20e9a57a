package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type styles struct {
	title lipgloss.Style
	name  lipgloss.Style
	field lipgloss.Style
	text  lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
}

// newStyles binds the palette to w. mode is auto, always or never; auto
// enables color only when w is a terminal.
func newStyles(w io.Writer, mode string) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	default:
		if !isTerminal(w) {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		name:  r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		field: r.NewStyle().Foreground(lipgloss.Color("#666666")),
		text:  r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		dim:   r.NewStyle().Faint(true),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
