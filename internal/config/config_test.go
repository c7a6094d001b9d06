package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aquaflow/aquaflow/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, ThemeAuto, cfg.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Log.File)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
api:
  base_url: http://tank.local:5000
theme: Dark
log:
  file: /tmp/aquaflow-test.log
  level: debug
metrics:
  addr: ":9100"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://tank.local:5000", cfg.API.BaseURL)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "/tmp/aquaflow-test.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("theme: light\n"), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("api:\n  base_url: http://file:5000\n"), 0o644))

	t.Setenv("AQUAFLOW_API_BASE_URL", "http://env:6000")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://env:6000", cfg.API.BaseURL)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("api: [unclosed\n"), 0o644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	t.Run("nothing found", func(t *testing.T) {
		path, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("global config", func(t *testing.T) {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0o755))
		require.NoError(t, os.WriteFile(global, []byte("theme: dark\n"), 0o644))

		path, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, path)
	})

	t.Run("local beats global", func(t *testing.T) {
		local := filepath.Join(work, ConfigFileName)
		require.NoError(t, os.WriteFile(local, []byte("theme: light\n"), 0o644))

		path, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, local, path)
	})

	t.Run("explicit missing", func(t *testing.T) {
		_, err := Find(filepath.Join(work, "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}

func TestLoadOrDefault_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("AQUAFLOW_THEME", "light")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "light", cfg.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bare host port", mutate: func(c *Config) { c.API.BaseURL = "tank.local:5000" }},
		{name: "https", mutate: func(c *Config) { c.API.BaseURL = "https://tank.example.com" }},
		{name: "ftp scheme", mutate: func(c *Config) { c.API.BaseURL = "ftp://tank" }, wantErr: true},
		{name: "future version", mutate: func(c *Config) { c.Version = CurrentConfigVersion + 1 }, wantErr: true},
		{name: "unknown theme", mutate: func(c *Config) { c.Theme = "sepia" }, wantErr: true},
		{name: "empty theme", mutate: func(c *Config) { c.Theme = "" }},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://pi.local:5000"
	cfg.Theme = ThemeDark
	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://pi.local:5000", loaded.API.BaseURL)
	assert.Equal(t, ThemeDark, loaded.Theme)
}

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("USER", "tester")

	assert.Equal(t, "", Expand(""))
	assert.Equal(t, filepath.Join(home, "logs/a.log"), Expand("~/logs/a.log"))
	assert.Equal(t, home+"/x", Expand("${HOME}/x"))
	assert.Equal(t, "/var/log/tester.log", Expand("/var/log/${USER}.log"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
}
