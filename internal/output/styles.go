package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for text output
type Styles struct {
	Current   lipgloss.Style
	Branch    lipgloss.Style
	Hash      lipgloss.Style
	Dim       lipgloss.Style
	Added     lipgloss.Style
	Removed   lipgloss.Style
	HunkHead  lipgloss.Style
	FileHead  lipgloss.Style
	Tag       lipgloss.Style
	Untracked lipgloss.Style
}

// UseColor decides whether w gets ANSI colors for the given mode
// ("auto", "always" or "never"). Auto colors terminals unless NO_COLOR is set.
func UseColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewStyles builds styles bound to w. Without color every style renders plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI256)
		}
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Current:   r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Branch:    r.NewStyle().Foreground(lipgloss.Color("12")),
		Hash:      r.NewStyle().Foreground(lipgloss.Color("3")),
		Dim:       r.NewStyle().Foreground(lipgloss.Color("8")),
		Added:     r.NewStyle().Foreground(lipgloss.Color("2")),
		Removed:   r.NewStyle().Foreground(lipgloss.Color("1")),
		HunkHead:  r.NewStyle().Foreground(lipgloss.Color("6")),
		FileHead:  r.NewStyle().Bold(true),
		Tag:       r.NewStyle().Foreground(lipgloss.Color("5")),
		Untracked: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}
