package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aquaflow/aquaflow/internal/errors"
)

var validThemes = map[string]bool{
	ThemeLight: true,
	ThemeDark:  true,
	ThemeAuto:  true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but aquaflow only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade aquaflow or lower the version field")
	}

	if err := validateBaseURL(cfg.API.BaseURL); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Set api.base_url to something like http://localhost:5000")
	}

	if cfg.Theme != "" && !validThemes[cfg.Theme] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown theme '%s'", cfg.Theme),
			"Use one of: light, dark, auto")
	}

	if cfg.Log.Level != "" && !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown log level '%s'", cfg.Log.Level),
			"Use one of: debug, info, warn, error")
	}

	return nil
}

// validateBaseURL accepts bare host:port as well as full http(s) URLs.
func validateBaseURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url has no host")
	}
	return nil
}
