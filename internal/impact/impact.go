package impact

// ComputeImpact runs the model on p: factor resolution, scenario
// computation, then derived metrics.
//
// It fails only with a *ReferenceError (errors.Is ErrUnresolvedReference),
// before any computation takes place, so a report is either complete or
// absent. All other inputs are assumed to be range-checked by the caller.
func ComputeImpact(p ProcessParameters) (ImpactReport, error) {
	factors, err := ResolveFactors(p)
	if err != nil {
		return ImpactReport{}, err
	}

	scenarios := computeScenarios(p, factors)

	return ImpactReport{
		Material:         factors.Material.Name,
		MaterialKey:      factors.Material.Key,
		Mass:             p.Mass,
		RecycledPercent:  p.RecycledPercent,
		SourceMode:       p.sourceMode(),
		PriorUse:         priorUseOf(p.Source),
		Primary:          scenarios.Primary.rounded(),
		Comparison:       scenarios.Comparison.rounded(),
		Reductions:       computeReductions(scenarios, p.RecycledPercent),
		CircularityScore: CircularityScore(p),
		LandUse:          roundUnit(scenarios.LandUse),
	}, nil
}
