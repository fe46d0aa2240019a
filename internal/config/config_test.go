package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/metalca/internal/config"
	"github.com/rshade/metalca/internal/engine/batch"
	"github.com/rshade/metalca/internal/logging"
)

// isolate points the config at an empty home and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	for _, env := range []string{
		config.EnvConfig, config.EnvLogLevel, config.EnvLogFormat,
		config.EnvOutputFormat, config.EnvConcurrency, config.EnvBatchSize,
		config.EnvServerAddr,
	} {
		t.Setenv(env, "")
	}
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, config.DefaultConcurrency, cfg.Batch.Concurrency)
}

func TestNew_ReadsUserFile(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
logging:
  level: warn
  format: json
`), 0o600))

	cfg := config.New()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat, "unset fields keep defaults")
}

func TestNew_ConfigPathOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":7000\"\n"), 0o600))
	t.Setenv(config.EnvConfig, path)

	assert.Equal(t, ":7000", config.New().Server.Addr)
}

func TestNew_MalformedFileIgnored(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("logging: [\n"), 0o600))

	cfg := config.New()
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
}

func TestApplyEnv(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvLogFormat, "json")
	t.Setenv(config.EnvOutputFormat, "ndjson")
	t.Setenv(config.EnvConcurrency, "9")
	t.Setenv(config.EnvBatchSize, "25")
	t.Setenv(config.EnvServerAddr, ":8181")

	cfg := config.New()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "ndjson", cfg.Output.DefaultFormat)
	assert.Equal(t, 9, cfg.Batch.Concurrency)
	assert.Equal(t, 25, cfg.Batch.BatchSize)
	assert.Equal(t, ":8181", cfg.Server.Addr)

	t.Setenv(config.EnvConcurrency, "many")
	assert.Equal(t, config.DefaultConcurrency, config.New().Batch.Concurrency)

	t.Setenv(config.EnvBatchSize, "lots")
	assert.Equal(t, config.DefaultBatchSize, config.New().Batch.BatchSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad output format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }},
		{"bad color", func(c *config.Config) { c.Output.Color = "rainbow" }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"empty level", func(c *config.Config) { c.Logging.Level = "" }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "text" }},
		{"zero concurrency", func(c *config.Config) { c.Batch.Concurrency = 0 }},
		{"huge concurrency", func(c *config.Config) { c.Batch.Concurrency = config.MaxConcurrency + 1 }},
		{"negative batch size", func(c *config.Config) { c.Batch.BatchSize = -1 }},
		{"huge batch size", func(c *config.Config) { c.Batch.BatchSize = batch.MaxBatchSize + 1 }},
		{"empty addr", func(c *config.Config) { c.Server.Addr = "" }},
		{"negative timeout", func(c *config.Config) { c.Server.ShutdownTimeoutSeconds = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.Batch.Concurrency = 7
	cfg.Logging.File = "/tmp/metalca.log"

	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.Empty(t, got.File)

	lc.File = "/var/log/metalca.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/var/log/metalca.log", got.File)
}

func TestGlobalConfig(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvOutputFormat, "json")

	assert.Equal(t, "json", config.GetDefaultOutputFormat())

	custom := config.Default()
	custom.Batch.Concurrency = 2
	config.SetGlobalConfig(custom)
	assert.Equal(t, 2, config.GetConcurrency())
	assert.Equal(t, config.DefaultBatchSize, config.GetBatchSize())
	assert.Equal(t, custom.Logging, config.GetLoggingConfig())
}

func TestGetBatchSize(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{name: "unset falls back to default", size: 0, want: config.DefaultBatchSize},
		{name: "configured", size: 50, want: 50},
		{name: "largest allowed", size: batch.MaxBatchSize, want: batch.MaxBatchSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			cfg := config.Default()
			cfg.Batch.BatchSize = tt.size
			require.NoError(t, cfg.Validate())
			config.SetGlobalConfig(cfg)
			assert.Equal(t, tt.want, config.GetBatchSize())
		})
	}
}
