package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// DefaultBaseURL is where the telemetry API listens out of the box.
const DefaultBaseURL = "http://localhost:5000"

// Theme values accepted in the config file.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Config represents the complete .aquaflow.yaml configuration file.
// The refresh period is deliberately absent: it is fixed by the dashboard.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Theme   string        `yaml:"theme" mapstructure:"theme"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// APIConfig points the dashboard at the telemetry API.
type APIConfig struct {
	// BaseURL is prefixed to /api/current-data, /api/stats and /api/history.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// LogConfig controls where diagnostic logs go.
type LogConfig struct {
	// File receives log output. Supports ~ and ${HOME}/${USER} expansion.
	File string `yaml:"file" mapstructure:"file"`

	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level" mapstructure:"level"`
}

// MetricsConfig controls the optional prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics, e.g. ":9100". Empty disables it.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Theme: ThemeAuto,
		Log: LogConfig{
			File:  "~/.cache/aquaflow/aquaflow.log",
			Level: "info",
		},
	}
}
