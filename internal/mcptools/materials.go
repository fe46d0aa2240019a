package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rshade/metalca/internal/impact"
)

// ListMaterialsTool handles the list_materials MCP tool.
type ListMaterialsTool struct{}

// NewListMaterialsTool creates a ListMaterialsTool.
func NewListMaterialsTool() *ListMaterialsTool {
	return &ListMaterialsTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ListMaterialsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_materials",
		mcp.WithDescription(
			"List the metals and option keys accepted by compute_impact, "+
				"with per-kg virgin and scrap reference coefficients.",
		),
	)
}

// Handle processes the list_materials tool call.
func (t *ListMaterialsTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := impact.ReferenceCatalog()
	var sb strings.Builder

	sb.WriteString("## Materials\n\n")
	sb.WriteString("| Key | Name | Virgin CO2e/kg | Scrap CO2e/kg | Melting ref °C |\n")
	sb.WriteString("|---|---|---:|---:|---:|\n")
	for _, m := range c.Materials {
		fmt.Fprintf(&sb, "| %s | %s | %.2f | %.2f | %.0f |\n",
			m.Key, m.Name, m.Virgin.CO2e, m.Scrap.CO2e, m.MeltingReferenceTemp)
	}

	sb.WriteString("\n## Options\n\n")
	fmt.Fprintf(&sb, "- **energy_source:** %s\n", strings.Join(stringsOf(c.EnergySources), ", "))
	fmt.Fprintf(&sb, "- **transport_mode:** %s\n", strings.Join(stringsOf(c.TransportModes), ", "))
	fmt.Fprintf(&sb, "- **end_of_life:** %s\n", strings.Join(stringsOf(c.EndOfLife), ", "))
	fmt.Fprintf(&sb, "- **previous_use:** %s\n", strings.Join(stringsOf(c.PriorUses), ", "))

	return mcp.NewToolResultText(sb.String()), nil
}
