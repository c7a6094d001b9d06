package telemetry

// Pump states reported in CurrentReading.PumpStatus.
const (
	PumpOn  = "ON"
	PumpOff = "OFF"
)

// CurrentReading is the latest tank sample served by /api/current-data.
// A nil field was absent (or null) in the payload.
type CurrentReading struct {
	WaterLevelPercent   *float64 `json:"water_level_percent"`
	DistanceCM          *float64 `json:"distance_cm"`
	CurrentVolumeLiters *float64 `json:"current_volume_liters"`
	PumpRuntimeSeconds  *float64 `json:"pump_runtime_seconds"`
	SessionDuration     *float64 `json:"session_duration"`
	PumpStatus          *string  `json:"pump_status"`
}

// MissingFields lists the JSON names of fields absent from the reading.
func (r CurrentReading) MissingFields() []string {
	var missing []string
	if r.WaterLevelPercent == nil {
		missing = append(missing, "water_level_percent")
	}
	if r.DistanceCM == nil {
		missing = append(missing, "distance_cm")
	}
	if r.CurrentVolumeLiters == nil {
		missing = append(missing, "current_volume_liters")
	}
	if r.PumpRuntimeSeconds == nil {
		missing = append(missing, "pump_runtime_seconds")
	}
	if r.SessionDuration == nil {
		missing = append(missing, "session_duration")
	}
	if r.PumpStatus == nil {
		missing = append(missing, "pump_status")
	}
	return missing
}

// Stats summarises every recorded sample, served by /api/stats.
// The server answers {} before the first sample, so every field is optional.
type Stats struct {
	MaxLevel     *float64 `json:"max_level"`
	MinLevel     *float64 `json:"min_level"`
	AvgLevel     *float64 `json:"avg_level"`
	TotalRecords *float64 `json:"total_records"`
}

// HistorySeries is the recent level history served by /api/history.
// Timestamps[i] labels Levels[i]. Levels is nil when the payload omitted it
// (the server reports errors as {"error": ...}); an empty array decodes to a
// non-nil empty slice.
type HistorySeries struct {
	Timestamps []string  `json:"timestamps"`
	Levels     []float64 `json:"levels"`
}

// Float returns a pointer to v, for building readings in code and tests.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }
