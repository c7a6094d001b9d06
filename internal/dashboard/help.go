package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpBinding represents a single keyboard shortcut entry.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpBindings defines all keyboard shortcuts shown in the help overlay.
var helpBindings = []HelpBinding{
	{Key: "q / Ctrl+C", Desc: "Quit"},
	{Key: "r", Desc: "Force refresh"},
	{Key: "t", Desc: "Toggle light/dark theme"},
	{Key: "Esc", Desc: "Close help"},
	{Key: "?", Desc: "Toggle this help"},
}

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
func (m Model) renderHelpOverlay(st styles) string {
	var lines []string
	lines = append(lines, st.helpTitle.Render("Keyboard Shortcuts"))

	for _, binding := range helpBindings {
		lines = append(lines, st.helpKey.Render(binding.Key)+st.helpDesc.Render(binding.Desc))
	}

	lines = append(lines, "")
	lines = append(lines, st.muted.Render("Press ? to close"))

	return m.place(st, st.helpBox.Render(strings.Join(lines, "\n")))
}

// place centers content in the terminal, or returns it as-is before the
// first window size message.
func (m Model) place(st styles, content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(st.palette.Background),
	)
}
