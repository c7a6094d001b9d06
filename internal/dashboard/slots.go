package dashboard

// Placeholder is shown in a text slot until its first value arrives.
const Placeholder = "--"

// Pump badge labels.
const (
	BadgeRunning = "RUNNING"
	BadgeIdle    = "IDLE"
)

// Badge is the pump status indicator.
type Badge struct {
	Active bool
	Label  string
}

// Gauge backs the water level bar. Set is false until a level arrives.
type Gauge struct {
	Percent float64
	Set     bool
}

// Slots is everything the dashboard displays. The binder writes it, the view
// reads it, and only the model's update loop holds it.
type Slots struct {
	// Primary readings
	WaterLevel      string
	DistanceCM      string
	CurrentVolume   string
	PumpRuntime     string
	SessionDuration string

	// Metric row, mirroring a subset of the readings
	MetricLevel      string
	MetricVolume     string
	MetricPumpStatus string
	MetricRuntime    string

	// Session statistics
	StatMaxLevel   string
	StatMinLevel   string
	StatAvgLevel   string
	StatDataPoints string

	Badge      Badge
	Gauge      Gauge
	Loading    bool
	LastUpdate string
}

// NewSlots returns the state shown before any data has arrived.
func NewSlots() Slots {
	return Slots{
		WaterLevel:       Placeholder,
		DistanceCM:       Placeholder,
		CurrentVolume:    Placeholder,
		PumpRuntime:      Placeholder,
		SessionDuration:  Placeholder,
		MetricLevel:      Placeholder,
		MetricVolume:     Placeholder,
		MetricPumpStatus: Placeholder,
		MetricRuntime:    Placeholder,
		StatMaxLevel:     Placeholder,
		StatMinLevel:     Placeholder,
		StatAvgLevel:     Placeholder,
		StatDataPoints:   Placeholder,
		Badge:            Badge{Label: Placeholder},
		Loading:          true,
		LastUpdate:       "Last update: " + Placeholder,
	}
}
