package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/config"
	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/mcptools"
)

// NewMCPCmd creates the mcp command, which serves the Model Context
// Protocol over stdio.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve metalca tools over the Model Context Protocol (stdio)",
		Long: `Runs an MCP server on stdin/stdout exposing the compute_impact and
list_materials tools. Logs go to stderr so they never corrupt the protocol
stream.`,
		Example: `  # Register with an MCP client
  {"mcpServers": {"metalca": {"command": "metalca", "args": ["mcp"]}}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			assessor := engine.New(engine.WithConcurrency(config.GetConcurrency()))
			s := mcptools.NewServer(assessor, cmd.Root().Version)

			logger.Info().Ctx(cmd.Context()).Msg("mcp server listening on stdio")
			return mcptools.ServeStdio(cmd.Context(), s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
