// Package term resolves the color mode once at startup and exposes the
// lipgloss styles used by logging and display.
//
// When colors are disabled every style is the zero style, so Render returns
// its input unchanged and callers need no special casing.
package term

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lucasfepe/sc2replayprocessor/internal/config"
)

// Palette colors (ANSI 256).
const (
	colorBlue    = lipgloss.Color("39")
	colorGreen   = lipgloss.Color("42")
	colorYellow  = lipgloss.Color("220")
	colorRed     = lipgloss.Color("196")
	colorCyan    = lipgloss.Color("86")
	colorMagenta = lipgloss.Color("170")
	colorDim     = lipgloss.Color("241")
)

// Styles. Plain until [Configure] enables colors.
var (
	Info    = lipgloss.NewStyle()
	Success = lipgloss.NewStyle()
	Warn    = lipgloss.NewStyle()
	Error   = lipgloss.NewStyle()
	Debug   = lipgloss.NewStyle()
	Accent  = lipgloss.NewStyle()
	Dim     = lipgloss.NewStyle()
)

var enabled bool

// Configure resolves the color mode and sets the package-level styles.
// Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
	if !enabled {
		plain := lipgloss.NewStyle()
		Info, Success, Warn, Error, Debug, Accent, Dim = plain, plain, plain, plain, plain, plain, plain
		return
	}
	Info = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	Success = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	Error = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	Debug = lipgloss.NewStyle().Foreground(colorCyan)
	Accent = lipgloss.NewStyle().Bold(true).Foreground(colorMagenta)
	Dim = lipgloss.NewStyle().Foreground(colorDim)
}

// Enabled reports whether colors are currently active.
func Enabled() bool { return enabled }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY (character device).
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
