package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validates the effective configuration: the user file, the project overlay and
METALCA_* environment overrides, merged.

Checks:
- output.default_format and output.color values
- logging.level and logging.format
- batch.concurrency range
- server address and timeouts`,
		Example: `  # Validate current configuration
  metalca config validate

  # Validate and show the effective values
  metalca config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints the effective configuration values.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if path, err := config.FilePath(); err == nil {
		cmd.Printf("  User config file: %s\n", path)
	}
	if dir := projectDirFromContext(cmd.Context()); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Default output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Color: %s\n", cfg.Output.Color)
	cmd.Printf("  Log level: %s (%s)\n", cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
	cmd.Printf("  Batch concurrency: %d\n", cfg.Batch.Concurrency)
	cmd.Printf("  Batch size: %d\n", cfg.Batch.BatchSize)
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
}
