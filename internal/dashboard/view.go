package dashboard

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := newStyles(m.theme)

	if m.showHelp {
		return m.renderHelpOverlay(st)
	}
	if m.slots.Loading {
		return m.renderLoading(st)
	}

	width := m.width
	if width == 0 {
		width = defaultWidth
	}

	sections := []string{
		m.renderHeader(st, width),
		m.renderCards(st, width),
		m.renderMetrics(st),
		m.renderStats(st),
		m.renderChart(st, width),
		m.renderFooter(st),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderLoading(st styles) string {
	content := m.spinner.View() + " " + st.label.Render("Waiting for telemetry…")
	return m.place(st, content)
}

// renderHeader draws the title on the left and the pump badge on the right.
func (m Model) renderHeader(st styles, width int) string {
	left := st.title.Render("AquaFlow") + st.muted.Render("  tank monitor")
	right := renderBadge(st, m.slots.Badge)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func renderBadge(st styles, b Badge) string {
	if b.Active {
		return st.badgeOn.Render("● " + b.Label)
	}
	return st.badgeOff.Render("○ " + b.Label)
}

// renderCards lays the primary readings out as cards, wrapping when the
// terminal is too narrow for one row.
func (m Model) renderCards(st styles, width int) string {
	cards := []string{
		renderCard(st, "Water Level", m.slots.WaterLevel, renderGauge(st, m.slots.Gauge)),
		renderCard(st, "Distance", m.slots.DistanceCM, ""),
		renderCard(st, "Volume", m.slots.CurrentVolume, ""),
		renderCard(st, "Pump Runtime", m.slots.PumpRuntime, ""),
		renderCard(st, "Session", m.slots.SessionDuration, ""),
	}

	perRow := width / lipgloss.Width(cards[0])
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := start + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(st styles, label, value, extra string) string {
	lines := []string{st.label.Render(label), st.value.Render(value)}
	if extra != "" {
		lines = append(lines, extra)
	}
	return st.card.Render(strings.Join(lines, "\n"))
}

// renderGauge draws the level as a horizontal bar. Levels outside [0,100]
// are clamped for drawing only.
func renderGauge(st styles, g Gauge) string {
	if !g.Set {
		return st.gaugeRest.Render(strings.Repeat(gaugeEmpty, gaugeWidth))
	}

	pct := math.Max(0, math.Min(100, g.Percent))
	filled := int(math.Round(pct / 100 * gaugeWidth))

	return st.gaugeFill.Render(strings.Repeat(gaugeFull, filled)) +
		st.gaugeRest.Render(strings.Repeat(gaugeEmpty, gaugeWidth-filled))
}

func (m Model) renderMetrics(st styles) string {
	sep := st.muted.Render("  ·  ")
	items := []string{
		st.label.Render("Level ") + st.value.Render(m.slots.MetricLevel),
		st.label.Render("Volume ") + st.value.Render(m.slots.MetricVolume),
		st.label.Render("Pump ") + st.value.Render(m.slots.MetricPumpStatus),
		st.label.Render("Runtime ") + st.value.Render(m.slots.MetricRuntime),
	}
	return " " + strings.Join(items, sep)
}

func (m Model) renderStats(st styles) string {
	sep := st.muted.Render("   ")
	items := []string{
		st.label.Render("Max ") + st.value.Render(m.slots.StatMaxLevel),
		st.label.Render("Min ") + st.value.Render(m.slots.StatMinLevel),
		st.label.Render("Avg ") + st.value.Render(m.slots.StatAvgLevel),
		st.label.Render("Data points ") + st.value.Render(m.slots.StatDataPoints),
	}
	title := st.title.Render("Session statistics")
	return st.section.Render(title + "\n" + strings.Join(items, sep))
}

func (m Model) renderChart(st styles, width int) string {
	// border and padding take four columns
	inner := width - 4
	if inner < minChartWidth {
		inner = minChartWidth
	}

	title := st.title.Render("Level history")
	return st.section.Render(title + "\n" + m.chart.Render(inner, chartHeight, st.chartColors()))
}

func (m Model) renderFooter(st styles) string {
	hints := "t theme  r refresh  ? help  q quit"
	return st.muted.Render(" " + m.slots.LastUpdate + "  ·  " + hints)
}
