package mcptools

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rshade/metalca/internal/engine"
)

// NewServer builds an MCP server with every metalca tool registered.
func NewServer(assessor *engine.Assessor, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"metalca",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	computeTool := NewComputeImpactTool(assessor)
	s.AddTool(computeTool.Definition(), computeTool.Handle)

	materialsTool := NewListMaterialsTool()
	s.AddTool(materialsTool.Definition(), materialsTool.Handle)

	return s
}

// ServeStdio runs s over the given streams until ctx is cancelled or stdin
// closes.
func ServeStdio(ctx context.Context, s *server.MCPServer, stdin io.Reader, stdout io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, stdin, stdout)
}

func serverInstructions() string {
	return `metalca estimates the environmental impact of metal production.

Call list_materials first when the user names a metal you are unsure about.
Call compute_impact with whatever parameters the user gives; unspecified
ones default to the reference scenario. Report the circularity score with
its rating, the reductions against the recycled comparison, and the top
recommendation. Results are screening-level estimates, not audited LCA.`
}
