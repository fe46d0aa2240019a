// Package config loads metalca settings from the user config file, an
// optional project overlay and METALCA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/metalca/internal/engine/batch"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidConfig is wrapped by every Validate failure.
const ErrInvalidConfig = constError("invalid configuration")

// Output formats accepted by the CLI.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

// Color modes for table output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Defaults.
const (
	DefaultConcurrency = 4
	MaxConcurrency     = 64
	DefaultBatchSize   = 1
	DefaultServerAddr  = "127.0.0.1:8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"

	outputTypeFile = "file"
	configFileName = "config.yaml"
	configDirName  = ".metalca"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig       = "METALCA_CONFIG"
	EnvHome         = "METALCA_HOME"
	EnvProjectDir   = "METALCA_PROJECT_DIR"
	EnvLogLevel     = "METALCA_LOG_LEVEL"
	EnvLogFormat    = "METALCA_LOG_FORMAT"
	EnvOutputFormat = "METALCA_OUTPUT_FORMAT"
	EnvConcurrency  = "METALCA_CONCURRENCY"
	EnvBatchSize    = "METALCA_BATCH_SIZE"
	EnvServerAddr   = "METALCA_SERVER_ADDR"
)

// Config is the complete metalca configuration.
type Config struct {
	Output  OutputConfig  `json:"output" yaml:"output"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Batch   BatchConfig   `json:"batch" yaml:"batch"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}

// OutputConfig controls how reports are rendered.
type OutputConfig struct {
	DefaultFormat string `json:"default_format" yaml:"default_format"`
	Color         string `json:"color" yaml:"color"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// BatchConfig bounds concurrent scenario evaluation.
type BatchConfig struct {
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// BatchSize is the number of scenarios one worker evaluates per task.
	// 0 means DefaultBatchSize.
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}

// ServerConfig configures `metalca serve`.
type ServerConfig struct {
	Addr                     string `json:"addr" yaml:"addr"`
	ReadHeaderTimeoutSeconds int    `json:"read_header_timeout_seconds" yaml:"read_header_timeout_seconds"`
	ShutdownTimeoutSeconds   int    `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Color:         ColorAuto,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Batch: BatchConfig{
			Concurrency: DefaultConcurrency,
			BatchSize:   DefaultBatchSize,
		},
		Server: ServerConfig{
			Addr:                     DefaultServerAddr,
			ReadHeaderTimeoutSeconds: 10, //nolint:mnd // seconds
			ShutdownTimeoutSeconds:   15, //nolint:mnd // seconds
		},
	}
}

// New returns the defaults overlaid with the user config file, if present,
// and then with environment overrides. A malformed file is logged and
// ignored so that the CLI stays usable.
func New() *Config {
	cfg := Default()

	path, err := FilePath()
	if err == nil {
		if loadErr := cfg.loadFile(path); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			Logger().Warn().
				Str("component", "config").
				Err(loadErr).
				Str("path", path).
				Msg("ignoring unreadable config file")
		}
	}

	cfg.ApplyEnv()
	return cfg
}

// Load reads the config file at path on top of the defaults. Unlike New it
// reports a missing or malformed file, and it does not apply the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes c as YAML to path, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from METALCA_* variables. Unparsable
// numeric values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Batch.Concurrency = n
		}
	}
	if v := os.Getenv(EnvBatchSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Batch.BatchSize = n
		}
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats(), c.Output.DefaultFormat) {
		return fmt.Errorf("%w: output.default_format %q (want one of %s)",
			ErrInvalidConfig, c.Output.DefaultFormat, strings.Join(OutputFormats(), ", "))
	}
	switch c.Output.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: output.color %q", ErrInvalidConfig, c.Output.Color)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format %q (want json or console)", ErrInvalidConfig, c.Logging.Format)
	}
	if c.Batch.Concurrency < 1 || c.Batch.Concurrency > MaxConcurrency {
		return fmt.Errorf("%w: batch.concurrency %d (want 1-%d)",
			ErrInvalidConfig, c.Batch.Concurrency, MaxConcurrency)
	}
	if c.Batch.BatchSize != 0 &&
		(c.Batch.BatchSize < batch.MinBatchSize || c.Batch.BatchSize > batch.MaxBatchSize) {
		return fmt.Errorf("%w: batch.batch_size %d (want %d-%d)",
			ErrInvalidConfig, c.Batch.BatchSize, batch.MinBatchSize, batch.MaxBatchSize)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig)
	}
	if c.Server.ReadHeaderTimeoutSeconds < 0 || c.Server.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalidConfig)
	}
	return nil
}

// OutputFormats lists the accepted output formats.
func OutputFormats() []string {
	return []string{FormatTable, FormatJSON, FormatNDJSON, FormatYAML}
}

// Dir returns the user configuration directory, METALCA_HOME or
// ~/.metalca.
func Dir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// FilePath returns the user config file path, METALCA_CONFIG or
// config.yaml inside Dir.
func FilePath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
