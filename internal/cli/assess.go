package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/config"
	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/scenario"
)

// specFlag copies one flag-bound field onto a scenario when the flag was set.
type specFlag struct {
	name  string
	apply func(dst *scenario.Spec, src *scenario.Spec)
}

// specFlags lists every scenario flag of the assess command.
func specFlags() []specFlag {
	return []specFlag{
		{"name", func(d, s *scenario.Spec) { d.Name = s.Name }},
		{"material", func(d, s *scenario.Spec) { d.Material = s.Material }},
		{"source", func(d, s *scenario.Spec) { d.Source = s.Source }},
		{"previous-use", func(d, s *scenario.Spec) { d.PreviousUse = s.PreviousUse }},
		{"mass", func(d, s *scenario.Spec) { d.Mass = s.Mass }},
		{"mass-unit", func(d, s *scenario.Spec) { d.MassUnit = s.MassUnit }},
		{"distance", func(d, s *scenario.Spec) { d.TransportDistance = s.TransportDistance }},
		{"transport-mode", func(d, s *scenario.Spec) { d.TransportMode = s.TransportMode }},
		{"recycled", func(d, s *scenario.Spec) { d.RecycledPercent = s.RecycledPercent }},
		{"energy-source", func(d, s *scenario.Spec) { d.EnergySource = s.EnergySource }},
		{"end-of-life", func(d, s *scenario.Spec) { d.EndOfLife = s.EndOfLife }},
		{"process-temp", func(d, s *scenario.Spec) { d.ProcessTemp = s.ProcessTemp }},
		{"efficiency", func(d, s *scenario.Spec) { d.Efficiency = s.Efficiency }},
		{"contaminant-level", func(d, s *scenario.Spec) { d.ContaminantLevel = s.ContaminantLevel }},
		{"refining-steps", func(d, s *scenario.Spec) { d.RefiningSteps = s.RefiningSteps }},
		{"alloy-separation", func(d, s *scenario.Spec) { d.AlloySeparation = s.AlloySeparation }},
		{"water-intensity", func(d, s *scenario.Spec) { d.WaterIntensity = s.WaterIntensity }},
		{"waste-percent", func(d, s *scenario.Spec) { d.WastePercent = s.WastePercent }},
		{"air-emission-factor", func(d, s *scenario.Spec) { d.AirEmissionFactor = s.AirEmissionFactor }},
		{"land-use-intensity", func(d, s *scenario.Spec) { d.LandUseIntensity = s.LandUseIntensity }},
	}
}

// NewAssessCmd creates the assess command, which evaluates one scenario.
func NewAssessCmd() *cobra.Command {
	var (
		file   string
		output string
	)
	flags := scenario.Defaults()

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess the environmental impact of one production scenario",
		Long: `Computes primary and recycled-comparison impacts, reductions and the circularity
score of one scenario.

Parameters come from the reference scenario, overlaid by --file (a single-scenario
document), overlaid by any flag set explicitly.`,
		Example: `  # Reference scenario
  metalca assess

  # Scrap steel from construction, 40% recycled comparison
  metalca assess --material steel --source scrap --previous-use construction --recycled 40

  # Scenario file with a flag override, as YAML
  metalca assess --file nickel.yaml --energy-source hydroelectric -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(output)
			if err != nil {
				return err
			}

			spec, err := buildSpec(cmd, file, &flags)
			if err != nil {
				return err
			}

			name := spec.Name
			if name == "" {
				name = "cli"
			}

			assessor := engine.New(engine.WithConcurrency(config.GetConcurrency()))
			assessment, err := assessor.AssessSpec(cmd.Context(), name, spec)
			if err != nil {
				logger.Debug().Ctx(cmd.Context()).Err(err).Msg("assessment rejected")
				return err
			}

			return renderAssessmentOutput(cmd, format, assessment)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "scenario document (YAML or JSON) holding one scenario")
	addOutputFlag(cmd, &output)

	f.StringVar(&flags.Name, "name", "", "label for the scenario")
	f.StringVar(&flags.Material, "material", flags.Material, "material key (see 'metalca materials')")
	f.StringVar(&flags.Source, "source", flags.Source, "primary production route: virgin or scrap")
	f.StringVar(&flags.PreviousUse, "previous-use", "", "prior use of scrap feedstock (source scrap only)")
	f.Float64Var(&flags.Mass, "mass", flags.Mass, "quantity of material")
	f.StringVar(&flags.MassUnit, "mass-unit", flags.MassUnit, "unit of --mass: g, kg, t or lb")
	f.Float64Var(&flags.TransportDistance, "distance", flags.TransportDistance, "transport distance in km")
	f.StringVar(&flags.TransportMode, "transport-mode", flags.TransportMode, "transport mode")
	f.Float64Var(&flags.RecycledPercent, "recycled", flags.RecycledPercent,
		"recycled share of the comparison scenario, 0-100")
	f.StringVar(&flags.EnergySource, "energy-source", flags.EnergySource, "process energy source")
	f.StringVar(&flags.EndOfLife, "end-of-life", flags.EndOfLife, "end-of-life route")
	f.Float64Var(&flags.ProcessTemp, "process-temp", flags.ProcessTemp, "process temperature in °C")
	f.Float64Var(&flags.Efficiency, "efficiency", flags.Efficiency, "process efficiency percent (0, 100]")
	f.Float64Var(&flags.ContaminantLevel, "contaminant-level", flags.ContaminantLevel,
		"contaminant level percent, 0-100")
	f.IntVar(&flags.RefiningSteps, "refining-steps", flags.RefiningSteps, "number of refining steps, >= 1")
	f.BoolVar(&flags.AlloySeparation, "alloy-separation", flags.AlloySeparation, "perform alloy separation")
	f.Float64Var(&flags.WaterIntensity, "water-intensity", flags.WaterIntensity, "water intensity in m³/t")
	f.Float64Var(&flags.WastePercent, "waste-percent", flags.WastePercent, "process waste percent, 0-100")
	f.Float64Var(&flags.AirEmissionFactor, "air-emission-factor", flags.AirEmissionFactor,
		"air emission factor in kg/t")
	f.Float64Var(&flags.LandUseIntensity, "land-use-intensity", flags.LandUseIntensity,
		"land use intensity in m²/t")

	return cmd
}

// buildSpec starts from the reference scenario or the scenario in file and
// applies every flag the user set.
func buildSpec(cmd *cobra.Command, file string, flags *scenario.Spec) (scenario.Spec, error) {
	spec := scenario.Defaults()

	if file != "" {
		doc, err := scenario.Load(file)
		if err != nil {
			return spec, err
		}
		if n := len(doc.Scenarios); n != 1 {
			return spec, fmt.Errorf("%s holds %d scenarios; use 'metalca batch' for multi-scenario files", file, n)
		}
		spec = doc.Scenarios[0]
		logger.Debug().Ctx(cmd.Context()).Str("file", file).Msg("scenario loaded")
	}

	for _, sf := range specFlags() {
		if cmd.Flags().Changed(sf.name) {
			sf.apply(&spec, flags)
		}
	}
	return spec, nil
}

func renderAssessmentOutput(cmd *cobra.Command, format string, a *engine.Assessment) error {
	w := cmd.OutOrStdout()
	switch format {
	case config.FormatJSON:
		return renderJSON(w, a)
	case config.FormatNDJSON:
		return renderNDJSON(w, []*engine.Assessment{a})
	case config.FormatYAML:
		return renderYAML(w, a)
	default:
		return renderAssessment(w, a, useStyledOutput(w))
	}
}
