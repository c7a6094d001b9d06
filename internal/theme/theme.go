// Package theme holds the dashboard's light/dark preference and palettes.
package theme

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Theme is the dashboard color scheme. The zero value means "not set".
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Auto is accepted by Parse and resolved against the terminal background.
const Auto = "auto"

// String returns the theme name, or "unset" for the zero value.
func (t Theme) String() string {
	if t == "" {
		return "unset"
	}
	return string(t)
}

// Toggle flips dark to light and anything else (light or unset) to dark.
func Toggle(t Theme) Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Parse converts a config or flag value into a Theme. "auto" and "" consult
// the terminal through Detect.
func Parse(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Light):
		return Light, nil
	case string(Dark):
		return Dark, nil
	case Auto, "":
		return Detect(), nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light, dark or auto)", s)
	}
}

// hasDarkBackground is swapped in tests.
var hasDarkBackground = termenv.HasDarkBackground

// Detect picks Dark when the terminal reports a dark background.
func Detect() Theme {
	if hasDarkBackground() {
		return Dark
	}
	return Light
}
