package config

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rshade/metalca/internal/logging"
)

// Logger returns the process-wide zerolog logger used while the config is
// loading, before a context logger exists.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// ToLoggingConfig converts the logging section to logging.Config.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = outputTypeFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns the Logging section of the global configuration.
// Overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
