package doctor

import (
	"context"
	"fmt"

	"github.com/aquaflow/aquaflow/internal/config"
	"github.com/aquaflow/aquaflow/internal/errors"
)

// ConfigFileCheck reports which config file is in effect.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    "Error finding config: " + errors.Summarize(err),
			Suggestion: "Check the --config path, or run 'aquaflow init' to create one",
		}
	}

	if path == "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No config file found, using defaults",
			Suggestion: "Run 'aquaflow init' to save your API address",
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: "Config file: " + path,
	}
}

// ConfigSchemaCheck validates the resolved config, defaults and environment
// included.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run(context.Context) CheckResult {
	cfg, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    "Failed to load config: " + errors.Summarize(err),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    "Schema error: " + errors.Summarize(err),
			Suggestion: "Fix the value named above in your config or AQUAFLOW_* environment",
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Schema valid (version %d, theme %s)", cfg.Version, cfg.Theme),
	}
}

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
}
