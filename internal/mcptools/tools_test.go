package mcptools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/impact"
)

// makeReq builds a CallToolRequest with the given arguments.
func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a CallToolResult.
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestComputeImpactTool_Definition(t *testing.T) {
	def := NewComputeImpactTool(engine.New()).Definition()

	assert.Equal(t, "compute_impact", def.Name)
	assert.Empty(t, def.InputSchema.Required)
	assert.Len(t, def.InputSchema.Properties, 20)
	assert.Contains(t, def.InputSchema.Properties, "recycled_percent")
	assert.Contains(t, def.InputSchema.Properties, "previous_use")
}

func TestComputeImpactTool_Handle(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		contains  []string
	}{
		{
			name:     "reference scenario",
			args:     nil,
			contains: []string{"Impact assessment: mcp", "71/100 (Good)", "52,700 kg CO2e", "48,800 kg CO2e", "CO2 7%"},
		},
		{
			name: "scrap copper",
			args: map[string]any{
				"name":         "copper-run",
				"material":     "copper",
				"source":       "scrap",
				"previous_use": "electronics",
				"mass":         2.5,
				"mass_unit":    "t",
			},
			contains: []string{"Impact assessment: copper-run", "**Previous use:** electronics", "2,500 kg"},
		},
		{
			name:     "grams keep decimals",
			args:     map[string]any{"mass": 400.0, "mass_unit": "g"},
			contains: []string{"**Mass:** 0.4 kg", "processing 0.4 kg"},
		},
		{
			name:      "carbon unit for mass",
			args:      map[string]any{"mass": 2.0, "mass_unit": "tCO2e"},
			wantError: true,
			contains:  []string{"Scenario rejected", "mass_unit"},
		},
		{
			name:      "unknown material",
			args:      map[string]any{"material": "unobtainium"},
			wantError: true,
			contains:  []string{`Unknown material "unobtainium"`, "list_materials"},
		},
		{
			name:      "unresolved end of life",
			args:      map[string]any{"end_of_life": "compost"},
			wantError: true,
			contains:  []string{`Unknown end of life "compost"`},
		},
		{
			name:      "out of range",
			args:      map[string]any{"recycled_percent": 150.0, "refining_steps": 0},
			wantError: true,
			contains:  []string{"Scenario rejected", "recycled_percent", "refining_steps"},
		},
		{
			name:      "wrong type",
			args:      map[string]any{"mass": "heavy"},
			wantError: true,
			contains:  []string{"invalid arguments"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewComputeImpactTool(engine.New())
			res, err := tool.Handle(context.Background(), makeReq(tt.args))
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.wantError, res.IsError)

			text := resultText(res)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
		})
	}
}

func TestListMaterialsTool_Handle(t *testing.T) {
	tool := NewListMaterialsTool()
	assert.Equal(t, "list_materials", tool.Definition().Name)

	res, err := tool.Handle(context.Background(), makeReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := resultText(res)
	for _, m := range impact.Materials() {
		assert.Contains(t, text, "| "+string(m.Key)+" |")
	}
	assert.Contains(t, text, "**previous_use:**")
}

func TestNewServer_RegistersTools(t *testing.T) {
	s := NewServer(engine.New(), "test")
	require.NotNil(t, s)

	tools := s.ListTools()
	assert.Contains(t, tools, "compute_impact")
	assert.Contains(t, tools, "list_materials")
}
