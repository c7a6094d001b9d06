package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication, as ANSI codes so they follow the
// terminal's own palette.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// spinnerColors cycle while a spinner animates.
var spinnerColors = []lipgloss.Color{"6", "4", "5", "4"}
