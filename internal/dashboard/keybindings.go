package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aquaflow/aquaflow/internal/theme"
)

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyRefresh     = "r"
	KeyToggleTheme = "t"
	KeyToggleHelp  = "?"
	KeyClose       = "esc"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key == KeyClose {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyRefresh:
		return true, m.refreshCmd()

	case KeyToggleTheme:
		m.theme = theme.Toggle(m.theme)
		m.log.Debug("theme: %s", m.theme)
		return true, nil
	}

	return false, nil
}
