package doctor

import (
	"context"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aquaflow/aquaflow/internal/theme"
)

// Hooks swapped in tests.
var (
	isTerminal   = func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }
	colorProfile = termenv.ColorProfile
	detectTheme  = theme.Detect
)

// TerminalCheck reports whether stdout can host the live dashboard.
type TerminalCheck struct{}

func (c *TerminalCheck) Name() string     { return "terminal_tty" }
func (c *TerminalCheck) Category() string { return CategoryTerminal }

func (c *TerminalCheck) Run(context.Context) CheckResult {
	if !isTerminal(os.Stdout) {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "stdout is not a terminal",
			Suggestion: "'aquaflow watch' needs a terminal; use 'aquaflow snapshot' in scripts",
		}
	}
	return CheckResult{Status: StatusPass, Message: "stdout is a terminal"}
}

// ColorCheck reports the terminal's color support and detected background.
type ColorCheck struct{}

func (c *ColorCheck) Name() string     { return "terminal_color" }
func (c *ColorCheck) Category() string { return CategoryTerminal }

func (c *ColorCheck) Run(context.Context) CheckResult {
	detected := detectTheme()

	switch colorProfile() {
	case termenv.TrueColor:
		return CheckResult{Status: StatusPass, Message: "True color, " + detected.String() + " background"}
	case termenv.ANSI256:
		return CheckResult{Status: StatusPass, Message: "256 colors, " + detected.String() + " background"}
	case termenv.ANSI:
		return CheckResult{
			Status:     StatusWarn,
			Message:    "16 colors only, " + detected.String() + " background",
			Suggestion: "Theme colors are approximated; set COLORTERM=truecolor if your terminal supports it",
		}
	default:
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No color support",
			Suggestion: "The dashboard renders without color; check TERM and NO_COLOR",
		}
	}
}

// NewTerminalChecks creates the terminal checks.
func NewTerminalChecks() []Check {
	return []Check{&TerminalCheck{}, &ColorCheck{}}
}
