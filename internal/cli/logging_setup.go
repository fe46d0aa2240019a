package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/config"
	"github.com/rshade/metalca/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) (*logging.Result, error) {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	result, err := logging.New(loggingCfg.ToLoggingConfig(), cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)

	logger = logging.ComponentLogger(result.Logger, "cli").With().Str("trace_id", traceID).Logger()
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result, nil
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(cmd *cobra.Command, logResult *logging.Result) error {
	logging.FromContext(cmd.Context()).Debug().Str("command", cmd.Name()).Msg("command finished")
	return logResult.Close()
}
