package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaflow/aquaflow/internal/chart"
	aferrors "github.com/aquaflow/aquaflow/internal/errors"
	"github.com/aquaflow/aquaflow/internal/logger"
	"github.com/aquaflow/aquaflow/internal/telemetry"
)

type stubFetcher struct {
	reading    telemetry.CurrentReading
	readingErr error
	stats      telemetry.Stats
	statsErr   error
	history    telemetry.HistorySeries
	historyErr error
}

func (s stubFetcher) GetCurrentReading(context.Context) (telemetry.CurrentReading, error) {
	return s.reading, s.readingErr
}

func (s stubFetcher) GetStats(context.Context) (telemetry.Stats, error) {
	return s.stats, s.statsErr
}

func (s stubFetcher) GetHistory(context.Context) (telemetry.HistorySeries, error) {
	return s.history, s.historyErr
}

var snapshotTime = time.Date(2024, 3, 9, 9, 30, 0, 0, time.Local)

func TestTakeSnapshot_AllResources(t *testing.T) {
	f := stubFetcher{
		reading: telemetry.CurrentReading{
			WaterLevelPercent:   telemetry.Float(72),
			DistanceCM:          telemetry.Float(14),
			CurrentVolumeLiters: telemetry.Float(8.2),
			PumpRuntimeSeconds:  telemetry.Float(130),
			SessionDuration:     telemetry.Float(600),
			PumpStatus:          telemetry.String(telemetry.PumpOn),
		},
		history: telemetry.HistorySeries{Timestamps: []string{"a", "b"}, Levels: []float64{1, 2}},
	}

	snap := takeSnapshot(context.Background(), f, logger.NewBufferLogger(), snapshotTime)

	assert.Empty(t, snap.Errors)
	assert.False(t, snap.Failed())
	assert.Equal(t, "72%", snap.Slots.WaterLevel)
	assert.Equal(t, "RUNNING", snap.Slots.Badge.Label)
	assert.Equal(t, "0%", snap.Slots.StatMaxLevel, "empty stats read as zero")
	assert.Equal(t, "0", snap.Slots.StatDataPoints)
	assert.Equal(t, 2, snap.Chart.Len())
	assert.Equal(t, "Last update: 9:30:00 AM", snap.Slots.LastUpdate)
}

func TestTakeSnapshot_PartialFailure(t *testing.T) {
	log := logger.NewBufferLogger()
	f := stubFetcher{
		readingErr: aferrors.New(aferrors.ErrFetch, "down", ""),
		stats:      telemetry.Stats{MaxLevel: telemetry.Float(90)},
		historyErr: aferrors.New(aferrors.ErrParse, "bad json", ""),
	}

	snap := takeSnapshot(context.Background(), f, log, snapshotTime)

	require.Len(t, snap.Errors, 2)
	assert.Equal(t, telemetry.ResourceCurrentData, snap.Errors[0].Resource)
	assert.Equal(t, telemetry.ResourceHistory, snap.Errors[1].Resource)
	assert.False(t, snap.Failed())
	assert.Equal(t, "90%", snap.Slots.StatMaxLevel)
	assert.True(t, snap.Slots.Loading, "no reading arrived")
	assert.True(t, log.HasLevel(logger.ErrorLevel))
}

func TestTakeSnapshot_AllFail(t *testing.T) {
	boom := aferrors.New(aferrors.ErrFetch, "down", "")
	f := stubFetcher{readingErr: boom, statsErr: boom, historyErr: boom}

	snap := takeSnapshot(context.Background(), f, logger.Noop(), snapshotTime)

	assert.True(t, snap.Failed())
	assert.Equal(t, telemetry.ResourceCurrentData, snap.Errors[0].Resource)
}

func TestTakeSnapshot_HistoryMismatch(t *testing.T) {
	f := stubFetcher{
		history: telemetry.HistorySeries{Timestamps: []string{"a"}, Levels: []float64{1, 2}},
	}

	snap := takeSnapshot(context.Background(), f, logger.Noop(), snapshotTime)

	require.Len(t, snap.Errors, 1)
	assert.True(t, aferrors.IsCode(snap.Errors[0].Err, aferrors.ErrRender))
	assert.Zero(t, snap.Chart.Len())
}

func TestTakeSnapshot_MismatchIsNotAFetchFailure(t *testing.T) {
	boom := aferrors.New(aferrors.ErrFetch, "down", "")
	f := stubFetcher{
		readingErr: boom,
		statsErr:   boom,
		history:    telemetry.HistorySeries{Timestamps: []string{"a"}, Levels: []float64{1, 2}},
	}

	snap := takeSnapshot(context.Background(), f, logger.Noop(), snapshotTime)

	require.Len(t, snap.Errors, 3)
	assert.False(t, snap.Failed(), "history was fetched")
}

func TestHistorySummary(t *testing.T) {
	c := chart.New(chart.DefaultOptions())
	assert.Equal(t, "--", historySummary(c))

	require.NoError(t, c.UpdateSeries([]string{"10:00"}, []float64{40}))
	assert.Equal(t, "1 point at 10:00, 40%", historySummary(c))

	require.NoError(t, c.UpdateSeries([]string{"10:00", "10:01", "10:02"}, []float64{40, 41, 42.5}))
	assert.Equal(t, "3 points, 10:00 to 10:02, latest 42.5%", historySummary(c))
}

func TestSnapshotCommand(t *testing.T) {
	srv := newTelemetryServer(t, healthyBodies())

	var out, errOut bytes.Buffer
	err := snapshotCommand(context.Background(), testConfig(t, srv.URL), &out, &errOut)
	require.NoError(t, err)

	text := out.String()
	for _, want := range []string{"72%", "14 cm", "8.2 L", "RUNNING", "130s", "600s", "90%", "10%", "55.6%", "1234", "3 points", "Last update:"} {
		assert.Contains(t, text, want)
	}
	assert.Contains(t, text, srv.URL)
	assert.Empty(t, errOut.String())
}

func TestSnapshotCommand_PartialFailure(t *testing.T) {
	bodies := healthyBodies()
	bodies["/api/stats"] = ""
	srv := newTelemetryServer(t, bodies)

	var out, errOut bytes.Buffer
	err := snapshotCommand(context.Background(), testConfig(t, srv.URL), &out, &errOut)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "72%")
	assert.Contains(t, errOut.String(), "✗ stats: [FETCH]")
}

func TestSnapshotCommand_AllFail(t *testing.T) {
	srv := newTelemetryServer(t, map[string]string{})

	var out, errOut bytes.Buffer
	err := snapshotCommand(context.Background(), testConfig(t, srv.URL), &out, &errOut)
	require.Error(t, err)

	assert.True(t, aferrors.IsCode(err, aferrors.ErrFetch))
	assert.Empty(t, out.String())
	assert.Equal(t, 3, strings.Count(errOut.String(), "✗"))
}

func TestSnapshotCommand_WritesLogFile(t *testing.T) {
	bodies := healthyBodies()
	bodies["/api/history"] = ""
	srv := newTelemetryServer(t, bodies)
	cfg := testConfig(t, srv.URL)

	var out, errOut bytes.Buffer
	require.NoError(t, snapshotCommand(context.Background(), cfg, &out, &errOut))

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fetch history")
}
