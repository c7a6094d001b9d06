package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aquaflow/aquaflow/internal/chart"
	"github.com/aquaflow/aquaflow/internal/config"
	"github.com/aquaflow/aquaflow/internal/dashboard"
	aferrors "github.com/aquaflow/aquaflow/internal/errors"
	"github.com/aquaflow/aquaflow/internal/logger"
	"github.com/aquaflow/aquaflow/internal/telemetry"
	"github.com/aquaflow/aquaflow/internal/ui"
)

// resourceError is one failed fetch, or history that could not be charted.
type resourceError struct {
	Resource string
	Err      error
}

// snapshot is the outcome of a single refresh cycle.
type snapshot struct {
	Slots  dashboard.Slots
	Chart  *chart.Chart
	Errors []resourceError

	fetchFailures int
}

// Failed reports whether every fetch failed. Unchartable history that was
// fetched does not count.
func (s snapshot) Failed() bool {
	return s.fetchFailures == 3
}

func runSnapshot(cmd *cobra.Command) error {
	cfg, err := loadSettings(configFlag, flagOverrides())
	if err != nil {
		return err
	}
	return snapshotCommand(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// snapshotCommand runs one cycle against the configured API and prints it.
func snapshotCommand(ctx context.Context, cfg *config.Config, out, errOut io.Writer) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var spinner *ui.Spinner
	if f, ok := errOut.(*os.File); ok && isTerminal(f) {
		spinner = ui.NewSpinner(errOut, "Reading "+a.client.BaseURL())
		spinner.Start()
	}

	snap := takeSnapshot(ctx, a.client, a.log, time.Now())

	if spinner != nil {
		if snap.Failed() {
			spinner.Fail()
		} else {
			spinner.Success()
		}
	}

	for _, re := range snap.Errors {
		fmt.Fprintf(errOut, "%s %s: %s\n", ui.SymbolFail, re.Resource, aferrors.Summarize(re.Err))
	}

	if snap.Failed() {
		return snap.Errors[0].Err
	}

	return writeSnapshot(out, a.client.BaseURL(), snap)
}

// takeSnapshot fetches the three resources concurrently and binds whatever
// arrived. Failures are collected in resource order.
func takeSnapshot(ctx context.Context, f dashboard.Fetcher, log logger.Logger, now time.Time) snapshot {
	var (
		wg       sync.WaitGroup
		reading  telemetry.CurrentReading
		stats    telemetry.Stats
		history  telemetry.HistorySeries
		errsByID [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		reading, errsByID[0] = f.GetCurrentReading(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, errsByID[1] = f.GetStats(ctx)
	}()
	go func() {
		defer wg.Done()
		history, errsByID[2] = f.GetHistory(ctx)
	}()
	wg.Wait()

	snap := snapshot{
		Slots: dashboard.NewSlots(),
		Chart: chart.New(chart.DefaultOptions()),
	}
	resources := [3]string{telemetry.ResourceCurrentData, telemetry.ResourceStats, telemetry.ResourceHistory}
	for i, err := range errsByID {
		if err != nil {
			log.Error("snapshot: fetch %s: %s", resources[i], aferrors.Summarize(err))
			snap.Errors = append(snap.Errors, resourceError{Resource: resources[i], Err: err})
			snap.fetchFailures++
		}
	}

	if errsByID[0] == nil {
		if missing := dashboard.RenderCurrentReading(&snap.Slots, reading, now); len(missing) > 0 {
			log.Warn("snapshot: reading is missing %s", strings.Join(missing, ", "))
		}
	}
	if errsByID[1] == nil {
		dashboard.RenderStats(&snap.Slots, stats)
	}
	if errsByID[2] == nil {
		if err := snap.Chart.UpdateSeries(history.Timestamps, history.Levels); err != nil {
			snap.Errors = append(snap.Errors, resourceError{Resource: telemetry.ResourceHistory, Err: err})
		}
	}

	return snap
}

// writeSnapshot prints the bound slots as aligned plain text.
func writeSnapshot(w io.Writer, baseURL string, snap snapshot) error {
	s := snap.Slots

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "AquaFlow snapshot\t%s\n\n", baseURL)

	fmt.Fprintf(tw, "Water level\t%s\n", s.WaterLevel)
	fmt.Fprintf(tw, "Distance\t%s\n", s.DistanceCM)
	fmt.Fprintf(tw, "Volume\t%s\n", s.CurrentVolume)
	fmt.Fprintf(tw, "Pump\t%s\n", s.Badge.Label)
	fmt.Fprintf(tw, "Pump runtime\t%s\n", s.PumpRuntime)
	fmt.Fprintf(tw, "Session\t%s\n\n", s.SessionDuration)

	fmt.Fprintf(tw, "Max level\t%s\n", s.StatMaxLevel)
	fmt.Fprintf(tw, "Min level\t%s\n", s.StatMinLevel)
	fmt.Fprintf(tw, "Avg level\t%s\n", s.StatAvgLevel)
	fmt.Fprintf(tw, "Data points\t%s\n\n", s.StatDataPoints)

	fmt.Fprintf(tw, "History\t%s\n\n", historySummary(snap.Chart))
	fmt.Fprintln(tw, s.LastUpdate)

	return tw.Flush()
}

// historySummary describes the chart contents in one line.
func historySummary(c *chart.Chart) string {
	n := c.Len()
	if n == 0 {
		return dashboard.Placeholder
	}

	labels, data := c.Labels(), c.Data()
	if n == 1 {
		return fmt.Sprintf("1 point at %s, %s%%", labels[0], formatLevel(data[0]))
	}
	return fmt.Sprintf("%d points, %s to %s, latest %s%%", n, labels[0], labels[n-1], formatLevel(data[n-1]))
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
