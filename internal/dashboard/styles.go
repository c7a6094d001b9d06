package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aquaflow/aquaflow/internal/chart"
	"github.com/aquaflow/aquaflow/internal/theme"
)

// Layout constants
const (
	cardWidth     = 22
	gaugeWidth    = 20
	minChartWidth = 20
	chartHeight   = 10
	defaultWidth  = 80
)

// Gauge characters
const (
	gaugeFull  = "█"
	gaugeEmpty = "░"
)

// styles holds every style the view needs for one palette. The theme can
// change between frames, so styles are built per render rather than held in
// package variables.
type styles struct {
	palette theme.Palette

	title     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	muted     lipgloss.Style
	card      lipgloss.Style
	section   lipgloss.Style
	badgeOn   lipgloss.Style
	badgeOff  lipgloss.Style
	gaugeFill lipgloss.Style
	gaugeRest lipgloss.Style

	helpBox   lipgloss.Style
	helpTitle lipgloss.Style
	helpKey   lipgloss.Style
	helpDesc  lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	p := theme.PaletteFor(t)
	return styles{
		palette: p,
		title: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
		value: lipgloss.NewStyle().
			Foreground(p.TextPrimary).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(p.TextMuted),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1).
			Width(cardWidth),
		section: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		badgeOn: lipgloss.NewStyle().
			Foreground(p.Active).
			Bold(true),
		badgeOff: lipgloss.NewStyle().
			Foreground(p.Inactive),
		gaugeFill: lipgloss.NewStyle().
			Foreground(p.Accent),
		gaugeRest: lipgloss.NewStyle().
			Foreground(p.Border),
		helpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Background(p.Surface).
			Padding(1, 2),
		helpTitle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			MarginBottom(1),
		helpKey: lipgloss.NewStyle().
			Foreground(p.TextPrimary).
			Bold(true).
			Width(14),
		helpDesc: lipgloss.NewStyle().
			Foreground(p.TextSecondary),
	}
}

// chartColors maps the palette onto the chart's frame colors.
func (s styles) chartColors() chart.Colors {
	return chart.Colors{
		Axis:       s.palette.Border,
		Label:      s.palette.TextMuted,
		Background: s.palette.Background,
	}
}
