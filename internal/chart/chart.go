// Package chart owns the dashboard's water level time-series chart.
//
// A Chart is created once and then only mutated through UpdateSeries, which
// replaces its labels and single data series wholesale. Rendering uses braille
// characters for 2x4 sub-cell resolution against fixed Y bounds.
package chart

import (
	"fmt"

	"github.com/aquaflow/aquaflow/internal/errors"
	"github.com/charmbracelet/lipgloss"
)

// TypeLine is the only chart type the dashboard draws.
const TypeLine = "line"

// SeriesColor is the level series color.
const SeriesColor = lipgloss.Color("#3b82f6")

// Series describes how the single data series is drawn.
type Series struct {
	Label string
	Color lipgloss.Color
	Fill  bool
}

// Options are fixed at construction time.
type Options struct {
	Type       string
	YMin       float64
	YMax       float64
	ShowLegend bool
	Series     Series
}

// DefaultOptions returns the water level chart configuration: a filled line
// over [0,100] with the legend hidden.
func DefaultOptions() Options {
	return Options{
		Type:       TypeLine,
		YMin:       0,
		YMax:       100,
		ShowLegend: false,
		Series: Series{
			Label: "Water Level (%)",
			Color: SeriesColor,
			Fill:  true,
		},
	}
}

// Chart holds the displayed labels and data. Not safe for concurrent use:
// the dashboard mutates it only from its update loop.
type Chart struct {
	opts     Options
	labels   []string
	data     []float64
	revision int
}

// New creates an empty chart.
func New(opts Options) *Chart {
	if opts.YMax <= opts.YMin {
		opts.YMin, opts.YMax = 0, 100
	}
	if opts.Type == "" {
		opts.Type = TypeLine
	}
	return &Chart{
		opts:   opts,
		labels: []string{},
		data:   []float64{},
	}
}

// UpdateSeries replaces the labels and data series, then marks the chart for
// redraw. A nil levels slice means the payload had no levels and is a no-op.
// Sequences of different length are rejected and the chart keeps its prior
// state.
func (c *Chart) UpdateSeries(timestamps []string, levels []float64) error {
	if levels == nil {
		return nil
	}
	if len(timestamps) != len(levels) {
		return errors.New(errors.ErrRender,
			fmt.Sprintf("History has %d timestamps but %d levels", len(timestamps), len(levels)),
			"")
	}

	c.labels = append(make([]string, 0, len(timestamps)), timestamps...)
	c.data = append(make([]float64, 0, len(levels)), levels...)
	c.revision++
	return nil
}

// Labels returns a copy of the current label sequence.
func (c *Chart) Labels() []string {
	return append([]string(nil), c.labels...)
}

// Data returns a copy of the current data series.
func (c *Chart) Data() []float64 {
	return append([]float64(nil), c.data...)
}

// Len returns the number of points displayed.
func (c *Chart) Len() int {
	return len(c.data)
}

// Revision counts accepted updates (redraws).
func (c *Chart) Revision() int {
	return c.revision
}

// Options returns the chart configuration.
func (c *Chart) Options() Options {
	return c.opts
}
