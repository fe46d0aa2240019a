package impact

// Fixed model constants for factor resolution.
const (
	overTempRatio   = 1.5
	underTempRatio  = 0.8
	overTempFactor  = 1.3
	underTempFactor = 1.1

	contaminationWeight  = 2.0
	separationPerLevel   = 0.1
	refiningStepsPenalty = 0.15

	neutralMultiplier = 1.0
)

// FactorSet is the fully resolved input of scenario computation.
type FactorSet struct {
	Material MaterialFactors

	EnergyMultiplier    float64
	TransportMultiplier float64
	EndOfLifeMultiplier float64
	PriorUseMultiplier  float64

	TemperatureFactor   float64
	EfficiencyFactor    float64
	ContaminationFactor float64
	SeparationFactor    float64
	RefiningFactor      float64
}

// ResolveFactors looks up the material and multiplier tables for p and
// derives the process adjustment factors.
//
// The material, energy-source and end-of-life tables are strict: a miss
// returns a *ReferenceError. Transport mode is soft and falls back to 1.0. The
// prior-use table is consulted only for scrap with a category supplied, and is
// strict when it is.
func ResolveFactors(p ProcessParameters) (FactorSet, error) {
	mat, err := LookupMaterial(p.Material)
	if err != nil {
		return FactorSet{}, err
	}

	energy, ok := energyMultipliers[p.EnergySource]
	if !ok {
		return FactorSet{}, unresolved(TableEnergySource, string(p.EnergySource))
	}

	eol, ok := endOfLifeMultipliers[p.EndOfLife]
	if !ok {
		return FactorSet{}, unresolved(TableEndOfLife, string(p.EndOfLife))
	}

	transport, ok := transportMultipliers[p.TransportMode]
	if !ok {
		transport = neutralMultiplier
	}

	priorUse := neutralMultiplier
	if prior := priorUseOf(p.Source); prior != "" {
		priorUse, ok = priorUseMultipliers[prior]
		if !ok {
			return FactorSet{}, unresolved(TablePriorUse, string(prior))
		}
	}

	return FactorSet{
		Material:            mat,
		EnergyMultiplier:    energy,
		TransportMultiplier: transport,
		EndOfLifeMultiplier: eol,
		PriorUseMultiplier:  priorUse,
		TemperatureFactor:   temperatureFactor(p.ProcessTemp, mat.MeltingReferenceTemp),
		EfficiencyFactor:    mat.TypicalEfficiency / p.Efficiency,
		ContaminationFactor: 1 + (p.ContaminantLevel/100)*contaminationWeight,
		SeparationFactor:    separationFactor(p.AlloySeparation, mat.SeparationComplexity),
		RefiningFactor:      1 + float64(p.RefiningSteps-1)*refiningStepsPenalty,
	}, nil
}

// temperatureFactor penalises over- and under-processing relative to the
// material's melting reference.
func temperatureFactor(temp, reference float64) float64 {
	switch {
	case temp > reference*overTempRatio:
		return overTempFactor
	case temp < reference*underTempRatio:
		return underTempFactor
	default:
		return neutralMultiplier
	}
}

func separationFactor(enabled bool, complexity int) float64 {
	if !enabled {
		return neutralMultiplier
	}
	return 1 + float64(complexity)*separationPerLevel
}
