package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors one theme renders with.
type Palette struct {
	Background    lipgloss.Color
	Surface       lipgloss.Color
	Border        lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color
	Accent        lipgloss.Color
	Active        lipgloss.Color // pump running badge
	Inactive      lipgloss.Color // pump idle badge
}

var darkPalette = Palette{
	Background:    lipgloss.Color("#0F172A"),
	Surface:       lipgloss.Color("#1E293B"),
	Border:        lipgloss.Color("#334155"),
	TextPrimary:   lipgloss.Color("#F8FAFC"),
	TextSecondary: lipgloss.Color("#CBD5E1"),
	TextMuted:     lipgloss.Color("#64748B"),
	Accent:        lipgloss.Color("#3B82F6"),
	Active:        lipgloss.Color("#22C55E"),
	Inactive:      lipgloss.Color("#94A3B8"),
}

var lightPalette = Palette{
	Background:    lipgloss.Color("#F8FAFC"),
	Surface:       lipgloss.Color("#FFFFFF"),
	Border:        lipgloss.Color("#CBD5E1"),
	TextPrimary:   lipgloss.Color("#0F172A"),
	TextSecondary: lipgloss.Color("#334155"),
	TextMuted:     lipgloss.Color("#64748B"),
	Accent:        lipgloss.Color("#2563EB"),
	Active:        lipgloss.Color("#16A34A"),
	Inactive:      lipgloss.Color("#64748B"),
}

// PaletteFor returns the palette for t. Unset renders as light, the way an
// unstyled page would.
func PaletteFor(t Theme) Palette {
	if t == Dark {
		return darkPalette
	}
	return lightPalette
}
