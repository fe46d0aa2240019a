// Package mcptools exposes assessments as Model Context Protocol tools.
//
// Each tool is a struct with Definition (the schema advertised to clients)
// and Handle (the mcp-go handler). Tool failures are returned as error
// results, never as Go errors, so the client sees the message.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/greenops"
	"github.com/rshade/metalca/internal/impact"
	"github.com/rshade/metalca/internal/scenario"
)

// ComputeImpactTool handles the compute_impact MCP tool.
type ComputeImpactTool struct {
	assessor *engine.Assessor
}

// NewComputeImpactTool creates a ComputeImpactTool backed by assessor.
func NewComputeImpactTool(assessor *engine.Assessor) *ComputeImpactTool {
	return &ComputeImpactTool{assessor: assessor}
}

// Definition returns the MCP tool definition for registration.
func (t *ComputeImpactTool) Definition() mcp.Tool {
	return mcp.NewTool("compute_impact",
		mcp.WithDescription(
			"Compute the cradle-to-gate environmental impact of producing a metal and "+
				"compare it with a partially recycled alternative. Returns impact vectors, "+
				"reduction percentages, a 0-100 circularity score and recommendations. "+
				"Every parameter is optional; omitted ones take the reference scenario "+
				"(1 t virgin aluminum, 500 km by truck, 50% recycled comparison).",
		),
		mcp.WithString("name",
			mcp.Description("Label for this scenario"),
		),
		mcp.WithString("material",
			mcp.Description("Material key; call list_materials for the catalog"),
		),
		mcp.WithString("source",
			mcp.Enum(string(impact.SourceVirgin), string(impact.SourceScrap)),
			mcp.Description("Primary production route"),
		),
		mcp.WithString("previous_use",
			mcp.Enum(stringsOf(impact.PriorUses())...),
			mcp.Description("Prior use of scrap feedstock (source=scrap only)"),
		),
		mcp.WithNumber("mass",
			mcp.Description("Quantity of material"),
		),
		mcp.WithString("mass_unit",
			mcp.Enum("g", "kg", "t", "lb"),
			mcp.Description("Unit of mass (default kg)"),
		),
		mcp.WithNumber("transport_distance",
			mcp.Description("Transport distance in km"),
		),
		mcp.WithString("transport_mode",
			mcp.Enum(stringsOf(impact.TransportModes())...),
			mcp.Description("Transport mode"),
		),
		mcp.WithNumber("recycled_percent",
			mcp.Min(0), mcp.Max(100), //nolint:mnd // percentage
			mcp.Description("Recycled share of the comparison scenario, 0-100"),
		),
		mcp.WithString("energy_source",
			mcp.Enum(stringsOf(impact.EnergySources())...),
			mcp.Description("Process energy source"),
		),
		mcp.WithString("end_of_life",
			mcp.Enum(stringsOf(impact.EndOfLifeOptions())...),
			mcp.Description("End-of-life route"),
		),
		mcp.WithNumber("process_temp",
			mcp.Description("Process temperature in degrees Celsius"),
		),
		mcp.WithNumber("efficiency",
			mcp.Description("Process efficiency percent, above 0 and at most 100"),
		),
		mcp.WithNumber("contaminant_level",
			mcp.Description("Contaminant level percent, 0-100"),
		),
		mcp.WithNumber("refining_steps",
			mcp.Description("Number of refining steps, at least 1"),
		),
		mcp.WithBoolean("alloy_separation",
			mcp.Description("Whether alloy separation is performed"),
		),
		mcp.WithNumber("water_intensity",
			mcp.Description("Water intensity in m3/t"),
		),
		mcp.WithNumber("waste_percent",
			mcp.Description("Process waste percent, 0-100"),
		),
		mcp.WithNumber("air_emission_factor",
			mcp.Description("Air emission factor in kg/t"),
		),
		mcp.WithNumber("land_use_intensity",
			mcp.Description("Land use intensity in m2/t"),
		),
	)
}

// Handle processes the compute_impact tool call.
func (t *ComputeImpactTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, err := specFromArguments(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	name := spec.Name
	if name == "" {
		name = "mcp"
	}

	assessment, err := t.assessor.AssessSpec(ctx, name, spec)
	if err != nil {
		return mcp.NewToolResultError(describeError(err)), nil
	}
	return mcp.NewToolResultText(formatAssessment(assessment)), nil
}

// specFromArguments decodes tool arguments onto the reference scenario by
// round-tripping them through the Spec JSON schema.
func specFromArguments(args map[string]any) (scenario.Spec, error) {
	spec := scenario.Defaults()
	if len(args) == 0 {
		return spec, nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return spec, err
	}
	if err = json.Unmarshal(data, &spec); err != nil {
		return spec, err
	}
	return spec, nil
}

func describeError(err error) string {
	var verr *scenario.ValidationError
	if errors.As(err, &verr) {
		var sb strings.Builder
		sb.WriteString("Scenario rejected:\n")
		for _, f := range verr.Fields {
			fmt.Fprintf(&sb, "- %s: %s\n", f.Field, f.Message)
		}
		return sb.String()
	}
	var refErr *impact.ReferenceError
	if errors.As(err, &refErr) {
		if refErr.Table == impact.TableMaterial {
			return fmt.Sprintf("Unknown material %q. Call list_materials for valid keys.", refErr.Key)
		}
		return fmt.Sprintf("Unknown %s %q.", strings.ReplaceAll(refErr.Table, "_", " "), refErr.Key)
	}
	return err.Error()
}

func formatAssessment(a *engine.Assessment) string {
	r := a.Report
	var sb strings.Builder

	fmt.Fprintf(&sb, "## Impact assessment: %s\n\n", a.Name)
	fmt.Fprintf(&sb, "**Material:** %s (%s)\n", r.Material, r.SourceMode)
	if r.PriorUse != "" {
		fmt.Fprintf(&sb, "**Previous use:** %s\n", r.PriorUse)
	}
	fmt.Fprintf(&sb, "**Mass:** %s kg\n", greenops.FormatMass(r.Mass))
	fmt.Fprintf(&sb, "**Circularity score:** %d/100 (%s)\n", r.CircularityScore, a.Rating)
	fmt.Fprintf(&sb, "**Assessment ID:** %s\n\n", a.ID)

	sb.WriteString("| Metric | Primary | Comparison |\n")
	sb.WriteString("|---|---:|---:|\n")
	row := func(label, unit string, p, c int64) {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", label,
			greenops.FormatQuantity(p, unit), greenops.FormatQuantity(c, unit))
	}
	row("Carbon footprint", "kg CO2e", r.Primary.CO2e, r.Comparison.CO2e)
	row("Energy", "MJ", r.Primary.Energy, r.Comparison.Energy)
	row("Water", "L", r.Primary.Water, r.Comparison.Water)
	row("Resource depletion", "kg Sb eq", r.Primary.Depletion, r.Comparison.Depletion)
	row("Waste", "kg", r.Primary.Waste, r.Comparison.Waste)

	fmt.Fprintf(&sb, "\n**Reductions:** CO2 %d%%, energy %d%%, water %d%%\n",
		r.Reductions.CO2, r.Reductions.Energy, r.Reductions.Water)

	if !a.Avoided.IsEmpty {
		fmt.Fprintf(&sb, "**Avoided:** %s\n", a.Avoided.DisplayText)
	}

	sb.WriteString("\n### Recommendations\n\n")
	for _, rec := range a.Recommendations {
		fmt.Fprintf(&sb, "- **%s**: %s\n", rec.Title, rec.Description)
	}

	sb.WriteString("\n### Summary\n\n")
	sb.WriteString(a.Summary)
	sb.WriteString("\n")
	return sb.String()
}

func stringsOf[K ~string](keys []K) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
