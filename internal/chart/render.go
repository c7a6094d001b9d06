package chart

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
const brailleBase = '\u2800'

// brailleDots maps [row][col] to the bit offset of that dot.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// axisWidth is the width of the Y tick label column, including the axis rune.
const axisWidth = 5

// Colors carries the theme-dependent colors used around the series.
type Colors struct {
	Axis       lipgloss.Color
	Label      lipgloss.Color
	Background lipgloss.Color
}

// Render draws the chart into a width x height cell area. The last line holds
// the first and last timestamp labels, so the plot itself gets height-1 rows.
func (c *Chart) Render(width, height int, colors Colors) string {
	if width <= axisWidth+1 || height < 2 {
		return ""
	}

	plotWidth := width - axisWidth
	plotHeight := height - 1

	axisStyle := lipgloss.NewStyle().Foreground(colors.Axis)
	labelStyle := lipgloss.NewStyle().Foreground(colors.Label)

	var lines []string
	if c.opts.ShowLegend {
		legend := lipgloss.NewStyle().Foreground(c.opts.Series.Color).Render("●") + " " + labelStyle.Render(c.opts.Series.Label)
		lines = append(lines, strings.Repeat(" ", axisWidth)+legend)
		plotHeight--
		if plotHeight < 1 {
			return strings.Join(lines, "\n")
		}
	}

	if len(c.data) == 0 {
		placeholder := labelStyle.Render("waiting for history…")
		body := lipgloss.Place(width, plotHeight+1, lipgloss.Center, lipgloss.Center, placeholder)
		lines = append(lines, body)
		return strings.Join(lines, "\n")
	}

	grid := c.plot(plotWidth, plotHeight)
	seriesStyle := lipgloss.NewStyle().Foreground(c.opts.Series.Color)
	if colors.Background != "" {
		seriesStyle = seriesStyle.Background(colors.Background)
	}

	for row, cells := range grid {
		lines = append(lines, axisStyle.Render(c.tickLabel(row, plotHeight))+seriesStyle.Render(string(cells)))
	}
	lines = append(lines, strings.Repeat(" ", axisWidth)+labelStyle.Render(c.xLabels(plotWidth)))

	return strings.Join(lines, "\n")
}

// plot rasterises the series into braille cells. Each cell holds two
// columns of four dots; a value lights the dot at its level, and with Fill
// every dot beneath it too.
func (c *Chart) plot(width, height int) [][]rune {
	grid := make([][]rune, height)
	for row := range grid {
		grid[row] = []rune(strings.Repeat(string(brailleBase), width))
	}

	dots := height * 4
	span := c.opts.YMax - c.opts.YMin
	for x, v := range sample(c.data, width*2) {
		level := int(math.Round((v - c.opts.YMin) / span * float64(dots)))
		level = max(0, min(level, dots))

		from := level - 1
		if c.opts.Series.Fill {
			from = 0
		}
		for d := max(from, 0); d < level; d++ {
			grid[height-1-d/4][x/2] |= 1 << brailleDots[3-d%4][x%2]
		}
	}
	return grid
}

// tickLabel returns the Y axis cell for a plot row: max at the top, the
// midpoint in the middle and min at the bottom.
func (c *Chart) tickLabel(row, height int) string {
	var value float64
	switch {
	case row == 0:
		value = c.opts.YMax
	case row == height-1:
		value = c.opts.YMin
	case height > 2 && row == (height-1)/2:
		value = (c.opts.YMax + c.opts.YMin) / 2
	default:
		return strings.Repeat(" ", axisWidth-1) + "│"
	}
	return fmt.Sprintf("%*s┤", axisWidth-1, fmt.Sprintf("%g", value))
}

// xLabels places the first label at the left edge and the last at the right.
func (c *Chart) xLabels(width int) string {
	if len(c.labels) == 0 {
		return ""
	}
	first := c.labels[0]
	last := c.labels[len(c.labels)-1]

	if len(c.labels) == 1 || lipgloss.Width(first)+lipgloss.Width(last)+1 > width {
		return truncate(first, width)
	}
	gap := width - lipgloss.Width(first) - lipgloss.Width(last)
	return first + strings.Repeat(" ", gap) + last
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}

// sample fits data to cols values. Shrinking keeps the peak of each span of
// source points; stretching blends neighbouring points linearly.
func sample(data []float64, cols int) []float64 {
	n := len(data)
	switch {
	case n == 0 || cols <= 0:
		return nil
	case n == cols:
		return data
	}

	out := make([]float64, cols)
	if n > cols {
		for i := range out {
			out[i] = slices.Max(data[i*n/cols : (i+1)*n/cols])
		}
		return out
	}

	if n == 1 {
		for i := range out {
			out[i] = data[0]
		}
		return out
	}
	step := float64(n-1) / float64(cols-1)
	for i := range out {
		pos := float64(i) * step
		j := min(int(pos), n-2)
		out[i] = data[j] + (data[j+1]-data[j])*(pos-float64(j))
	}
	return out
}
