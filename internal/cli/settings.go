package cli

import (
	"github.com/aquaflow/aquaflow/internal/config"
)

// overrides are the global flag values. Empty means "not given".
type overrides struct {
	API         string
	LogFile     string
	LogLevel    string
	MetricsAddr string
}

// flagOverrides captures the parsed global flags.
func flagOverrides() overrides {
	return overrides{
		API:         apiFlag,
		LogFile:     logFileFlag,
		LogLevel:    logLevelFlag,
		MetricsAddr: metricsAddrFlag,
	}
}

// apply layers the flags over cfg.
func (o overrides) apply(cfg *config.Config) {
	if o.API != "" {
		cfg.API.BaseURL = o.API
	}
	if o.LogFile != "" {
		cfg.Log.File = config.Expand(o.LogFile)
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.MetricsAddr != "" {
		cfg.Metrics.Addr = o.MetricsAddr
	}
}

// loadSettings resolves the effective config from file, environment and
// flags, then validates the result.
func loadSettings(configPath string, o overrides) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	o.apply(cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
