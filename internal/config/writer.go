package config

import (
	"os"
	"path/filepath"

	"github.com/aquaflow/aquaflow/internal/errors"
	"gopkg.in/yaml.v3"
)

// Write serialises cfg as YAML to path, creating parent directories.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config",
			"This is a bug, please report it")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot create config directory: "+dir,
				"Check directory permissions")
		}
	}

	header := []byte("# aquaflow dashboard configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+path,
			"Check file permissions")
	}
	return nil
}
