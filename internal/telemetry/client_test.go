package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aquaflow/aquaflow/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves fixed bodies per path.
func newTestServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_NormalisesBaseURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "http://localhost:5000"},
		{"  tank.local:5000/ ", "http://tank.local:5000"},
		{"https://tank.example.com/", "https://tank.example.com"},
		{"http://10.0.0.2:8080", "http://10.0.0.2:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := New(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.BaseURL())
		})
	}
}

func TestGetCurrentReading(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		PathCurrentData: `{"timestamp": 1700000000, "water_level_percent": 72, "distance_cm": 14,
			"current_volume_liters": 8.2, "pump_runtime_seconds": 130, "session_duration": 600,
			"pump_status": "ON", "datetime": "2024-01-01 10:00:00"}`,
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	r, err := c.GetCurrentReading(context.Background())
	require.NoError(t, err)

	require.NotNil(t, r.WaterLevelPercent)
	assert.Equal(t, 72.0, *r.WaterLevelPercent)
	assert.Equal(t, 14.0, *r.DistanceCM)
	assert.Equal(t, 8.2, *r.CurrentVolumeLiters)
	assert.Equal(t, 130.0, *r.PumpRuntimeSeconds)
	assert.Equal(t, 600.0, *r.SessionDuration)
	assert.Equal(t, "ON", *r.PumpStatus)
	assert.Empty(t, r.MissingFields())
}

func TestGetCurrentReading_MissingFields(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		PathCurrentData: `{"water_level_percent": 50, "pump_status": null}`,
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	r, err := c.GetCurrentReading(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"distance_cm", "current_volume_liters", "pump_runtime_seconds", "session_duration", "pump_status",
	}, r.MissingFields())
}

func TestGetStats(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Stats
	}{
		{
			name: "populated",
			body: `{"max_level": 95.0, "min_level": 10.0, "avg_level": 55.55, "total_records": 42}`,
			want: Stats{MaxLevel: Float(95), MinLevel: Float(10), AvgLevel: Float(55.55), TotalRecords: Float(42)},
		},
		{
			name: "empty object before first sample",
			body: `{}`,
			want: Stats{},
		},
		{
			name: "explicit nulls",
			body: `{"max_level": null, "min_level": null, "avg_level": null, "total_records": 0}`,
			want: Stats{TotalRecords: Float(0)},
		},
		{
			name: "server error payload",
			body: `{"error": "No columns to parse from file"}`,
			want: Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, map[string]string{PathStats: tt.body})
			c, err := New(srv.URL)
			require.NoError(t, err)

			got, err := c.GetStats(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetHistory(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		srv := newTestServer(t, map[string]string{
			PathHistory: `{"timestamps": ["10:00", "10:01"], "levels": [40, 41.5], "volumes": [4, 4.1]}`,
		})
		c, err := New(srv.URL)
		require.NoError(t, err)

		h, err := c.GetHistory(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00", "10:01"}, h.Timestamps)
		assert.Equal(t, []float64{40, 41.5}, h.Levels)
	})

	t.Run("empty arrays are present", func(t *testing.T) {
		srv := newTestServer(t, map[string]string{PathHistory: `{"timestamps": [], "levels": []}`})
		c, err := New(srv.URL)
		require.NoError(t, err)

		h, err := c.GetHistory(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, h.Levels)
		assert.Empty(t, h.Levels)
	})

	t.Run("levels absent", func(t *testing.T) {
		srv := newTestServer(t, map[string]string{PathHistory: `{"error": "boom"}`})
		c, err := New(srv.URL)
		require.NoError(t, err)

		h, err := c.GetHistory(context.Background())
		require.NoError(t, err)
		assert.Nil(t, h.Levels)
	})
}

func TestGet_ParseError(t *testing.T) {
	srv := newTestServer(t, map[string]string{PathStats: `<html>oops</html>`})
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetStats(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrParse))
	assert.False(t, errors.IsCode(err, errors.ErrFetch))
}

func TestGet_StatusError(t *testing.T) {
	srv := newTestServer(t, map[string]string{})
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetHistory(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetch))
	assert.Contains(t, err.Error(), "404")
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.GetCurrentReading(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetch))
}

func TestGet_ContextCancelled(t *testing.T) {
	srv := newTestServer(t, map[string]string{PathStats: `{}`})
	c, err := New(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.GetStats(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFetch))
}

// countingTransport counts requests before passing them on.
type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return http.DefaultTransport.RoundTrip(r)
}

func TestWithHTTPClient(t *testing.T) {
	srv := newTestServer(t, map[string]string{PathStats: `{"total_records": 3}`})
	rt := &countingTransport{}

	c, err := New(srv.URL, WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	st, err := c.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3.0, *st.TotalRecords)
	assert.Equal(t, 1, rt.calls)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		PathStats:   `{}`,
		PathHistory: `not json`,
	})

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c, err := New(srv.URL, WithMetrics(m))
	require.NoError(t, err)

	_, _ = c.GetStats(context.Background())
	_, _ = c.GetStats(context.Background())
	_, _ = c.GetHistory(context.Background())
	_, _ = c.GetCurrentReading(context.Background())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues(ResourceStats, OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues(ResourceHistory, OutcomeParseError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues(ResourceCurrentData, OutcomeFetchError)))

	// Registering twice reuses the existing collectors.
	again := NewMetrics(reg)
	assert.Equal(t, 2.0, testutil.ToFloat64(again.fetchTotal.WithLabelValues(ResourceStats, OutcomeOK)))
}
