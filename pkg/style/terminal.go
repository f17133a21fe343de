package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled reports whether output to w should carry ANSI colors.
// NO_COLOR and a dumb terminal disable them as well.
func ColorEnabled(w io.Writer) bool {
	if !IsTerminal(w) {
		return false
	}
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}

// Setup configures lipgloss and pterm for w. It is called once by the
// commands before printing.
func Setup(w io.Writer) {
	if ColorEnabled(w) {
		lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
		pterm.EnableStyling()
		return
	}
	DisableColor()
}

// DisableColor turns off all styling.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}
