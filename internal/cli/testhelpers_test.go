package cli

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aquaflow/aquaflow/internal/config"
)

const (
	currentJSON = `{"water_level_percent": 72, "distance_cm": 14, "current_volume_liters": 8.2,
		"pump_runtime_seconds": 130, "session_duration": 600, "pump_status": "ON",
		"timestamp": 1700000000, "datetime": "2023-11-14 22:13:20"}`
	statsJSON   = `{"max_level": 90, "min_level": 10, "avg_level": 55.56, "total_records": 1234}`
	historyJSON = `{"timestamps": ["10:00", "10:01", "10:02"], "levels": [70, 71, 72]}`
)

// newTelemetryServer serves the three API resources. A resource mapped to an
// empty body answers 500.
func newTelemetryServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok || body == "" {
			http.Error(w, `{"error": "boom"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func healthyBodies() map[string]string {
	return map[string]string{
		"/api/current-data": currentJSON,
		"/api/stats":        statsJSON,
		"/api/history":      historyJSON,
	}
}

// testConfig points at baseURL and logs into a temp file.
func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.Log.File = filepath.Join(t.TempDir(), "aquaflow.log")
	cfg.Log.Level = "debug"
	return cfg
}
