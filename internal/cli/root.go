// Package cli implements the metalca command line.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/metalca/internal/config"
	"github.com/rshade/metalca/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

type projectDirKey struct{}

// projectDirFromContext returns the project directory resolved at start-up.
func projectDirFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	dir, _ := ctx.Value(projectDirKey{}).(string)
	return dir
}

// NewRootCmd creates the root Cobra command for the metalca CLI.
// It loads configuration (user file, project overlay, environment), wires
// logging and tracing, and registers every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.Result
		projectDir string
	)

	cmd := &cobra.Command{
		Use:   "metalca",
		Short: "Metal production life-cycle impact calculator",
		Long: `metalca estimates the cradle-to-gate environmental impact of producing a metal,
compares it with a partially recycled alternative, and scores its circularity.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cwd, _ := os.Getwd()
			resolved := config.ResolveProjectDir(ctx, projectDir, cwd)
			config.SetGlobalConfig(config.NewWithProjectDir(ctx, resolved))
			cmd.SetContext(context.WithValue(ctx, projectDirKey{}, resolved))

			result, err := setupLogging(cmd)
			if err != nil {
				return err
			}
			logResult = result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding .metalca/ (default: nearest ancestor with .metalca/)")

	cmd.AddCommand(
		NewAssessCmd(),
		NewBatchCmd(),
		NewMaterialsCmd(),
		NewServeCmd(),
		NewMCPCmd(),
		newScenarioCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Assess the reference scenario (1 t of virgin aluminum)
  metalca assess

  # Assess 2 t of scrap copper from electronics, as JSON
  metalca assess --material copper --source scrap --previous-use electronics \
    --mass 2 --mass-unit t --output json

  # Assess a scenario file
  metalca assess --file copper.yaml

  # Assess every scenario in several files, best score first
  metalca batch plant-a.yaml plant-b.json --sort score:desc

  # Write a scenario template
  metalca scenario init > scenario.yaml

  # List supported materials and options
  metalca materials

  # Serve the HTTP API
  metalca serve --addr :8080

  # Serve MCP tools on stdio
  metalca mcp

  # Initialize configuration
  metalca config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// newScenarioCmd creates the scenario command group.
func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "scenario", Short: "Scenario document commands"}
	cmd.AddCommand(NewScenarioInitCmd(), NewScenarioValidateCmd())
	return cmd
}
