package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/aquaflow/aquaflow/internal/chart"
	"github.com/aquaflow/aquaflow/internal/errors"
	"github.com/aquaflow/aquaflow/internal/logger"
	"github.com/aquaflow/aquaflow/internal/telemetry"
	"github.com/aquaflow/aquaflow/internal/theme"
)

// RefreshPeriod is how often the dashboard polls the telemetry API.
const RefreshPeriod = 2000 * time.Millisecond

// Fetcher reads the three dashboard resources. telemetry.Client implements it.
type Fetcher interface {
	GetCurrentReading(ctx context.Context) (telemetry.CurrentReading, error)
	GetStats(ctx context.Context) (telemetry.Stats, error)
	GetHistory(ctx context.Context) (telemetry.HistorySeries, error)
}

// RefreshMsg starts a refresh cycle.
type RefreshMsg struct{}

// readingMsg carries a resolved current-data fetch.
type readingMsg struct {
	cycle   string
	reading telemetry.CurrentReading
}

// statsMsg carries a resolved stats fetch.
type statsMsg struct {
	cycle string
	stats telemetry.Stats
}

// historyMsg carries a resolved history fetch.
type historyMsg struct {
	cycle   string
	history telemetry.HistorySeries
}

// Model is the Bubble Tea model for the tank dashboard.
type Model struct {
	fetcher Fetcher
	ctx     context.Context
	log     logger.Logger
	now     func() time.Time
	newID   func() string

	slots   Slots
	chart   *chart.Chart
	theme   theme.Theme
	spinner spinner.Model

	width    int
	height   int
	cycles   int
	showHelp bool
	quitting bool
}

// ModelOption customises a Model.
type ModelOption func(*Model)

// WithLogger sets where fetch and render failures are reported.
func WithLogger(l logger.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTheme sets the initial theme.
func WithTheme(t theme.Theme) ModelOption {
	return func(m *Model) {
		m.theme = t
	}
}

// WithClock overrides the clock used for the last update stamp.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithContext sets the context passed to every fetch. Cancelling it aborts
// in-flight requests.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// NewModel creates the dashboard model. The chart is created here, once.
func NewModel(fetcher Fetcher, opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    time.Second / 8,
	}

	m := Model{
		fetcher: fetcher,
		ctx:     context.Background(),
		log:     logger.Default(),
		now:     time.Now,
		newID:   uuid.NewString,
		slots:   NewSlots(),
		chart:   chart.New(chart.DefaultOptions()),
		spinner: s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the loading spinner. Refresh cycles are driven from outside.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RefreshMsg:
		return m, m.refreshCmd()

	case readingMsg:
		missing := RenderCurrentReading(&m.slots, msg.reading, m.now())
		if len(missing) > 0 {
			err := errors.New(errors.ErrRender, "reading is missing "+strings.Join(missing, ", "), "")
			m.log.Warn("cycle %s: %s", msg.cycle, err.Summary())
		}
		return m, nil

	case statsMsg:
		RenderStats(&m.slots, msg.stats)
		return m, nil

	case historyMsg:
		if err := m.chart.UpdateSeries(msg.history.Timestamps, msg.history.Levels); err != nil {
			m.log.Warn("cycle %s: %s", msg.cycle, errors.Summarize(err))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.slots.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// refreshCmd starts one cycle: three fetches with no barrier between them.
func (m *Model) refreshCmd() tea.Cmd {
	m.cycles++
	cycle := m.newID()
	m.log.Debug("cycle %s: refresh", cycle)
	return tea.Batch(
		m.fetchCurrentCmd(cycle),
		m.fetchStatsCmd(cycle),
		m.fetchHistoryCmd(cycle),
	)
}

func (m Model) fetchCurrentCmd(cycle string) tea.Cmd {
	ctx, fetcher, log := m.ctx, m.fetcher, m.log
	return func() tea.Msg {
		r, err := fetcher.GetCurrentReading(ctx)
		if err != nil {
			logFetchFailure(log, telemetry.ResourceCurrentData, cycle, err)
			return nil
		}
		return readingMsg{cycle: cycle, reading: r}
	}
}

func (m Model) fetchStatsCmd(cycle string) tea.Cmd {
	ctx, fetcher, log := m.ctx, m.fetcher, m.log
	return func() tea.Msg {
		st, err := fetcher.GetStats(ctx)
		if err != nil {
			logFetchFailure(log, telemetry.ResourceStats, cycle, err)
			return nil
		}
		return statsMsg{cycle: cycle, stats: st}
	}
}

func (m Model) fetchHistoryCmd(cycle string) tea.Cmd {
	ctx, fetcher, log := m.ctx, m.fetcher, m.log
	return func() tea.Msg {
		h, err := fetcher.GetHistory(ctx)
		if err != nil {
			logFetchFailure(log, telemetry.ResourceHistory, cycle, err)
			return nil
		}
		return historyMsg{cycle: cycle, history: h}
	}
}

// logFetchFailure reports a failed fetch. The resource's slots keep their
// previous values.
func logFetchFailure(log logger.Logger, resource, cycle string, err error) {
	log.Error("cycle %s: fetch %s: %s", cycle, resource, errors.Summarize(err))
}

// Slots returns the displayed state.
func (m Model) Slots() Slots {
	return m.slots
}

// Chart returns the level history chart.
func (m Model) Chart() *chart.Chart {
	return m.chart
}

// Theme returns the active theme.
func (m Model) Theme() theme.Theme {
	return m.theme
}

// Cycles returns how many refresh cycles have been started.
func (m Model) Cycles() int {
	return m.cycles
}
