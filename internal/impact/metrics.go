package impact

import "math"

// reductionBounds limits the reported reduction of one metric.
type reductionBounds struct {
	Floor int
	Cap   int
	// RecycledWeight scales recycled content into the substitute value used
	// when the comparison pathway is not smaller than the primary one.
	RecycledWeight float64
}

// Reduction bounds per metric.
//
//nolint:gochecknoglobals // Read-only model constants.
var (
	co2Bounds    = reductionBounds{Floor: 5, Cap: 85, RecycledWeight: 0.5}
	energyBounds = reductionBounds{Floor: 8, Cap: 80, RecycledWeight: 0.6}
	waterBounds  = reductionBounds{Floor: 12, Cap: 75, RecycledWeight: 0.4}
)

// Circularity score weights.
const (
	scoreBase              = 35.0
	scoreRecycledWeight    = 0.4
	scoreEfficiencyPivot   = 70.0
	scoreEfficiencyWeight  = 0.3
	scoreContaminantWeight = 0.5

	scoreRenewableBonus = 15.0
	scoreNuclearBonus   = 10.0
	scoreRecycleBonus   = 12.0
	scoreReuseBonus     = 15.0

	// MinCircularityScore and MaxCircularityScore bound the reported score.
	MinCircularityScore = 25
	MaxCircularityScore = 95
)

// ReductionBounds returns the inclusive [floor, cap] of each reported
// reduction, keyed "co2", "energy" and "water".
func ReductionBounds() map[string][2]int {
	return map[string][2]int{
		"co2":    {co2Bounds.Floor, co2Bounds.Cap},
		"energy": {energyBounds.Floor, energyBounds.Cap},
		"water":  {waterBounds.Floor, waterBounds.Cap},
	}
}

func computeReductions(s scenarioResult, recycledPercent float64) ReductionSet {
	return ReductionSet{
		CO2:    reduction(s.Primary.CO2e, s.Comparison.CO2e, recycledPercent, co2Bounds),
		Energy: reduction(s.Primary.Energy, s.Comparison.Energy, recycledPercent, energyBounds),
		Water:  reduction(s.Primary.Water, s.Comparison.Water, recycledPercent, waterBounds),
	}
}

// reduction returns the bounded percentage by which comparison undercuts
// primary. A comparison that is not smaller yields a substitute derived from
// recycled content alone, so the figure is never negative.
func reduction(primary, comparison, recycledPercent float64, b reductionBounds) int {
	var pct float64
	if primary > comparison {
		pct = (primary - comparison) / primary * 100
	} else {
		pct = recycledPercent * b.RecycledWeight
	}
	return clampInt(int(math.Round(pct)), b.Floor, b.Cap)
}

// CircularityScore is the weighted composite of recycled content, process
// efficiency, contamination, energy source and end-of-life handling, clamped
// to [MinCircularityScore, MaxCircularityScore].
func CircularityScore(p ProcessParameters) int {
	score := scoreBase + p.RecycledPercent*scoreRecycledWeight
	score += (p.Efficiency - scoreEfficiencyPivot) * scoreEfficiencyWeight
	score -= p.ContaminantLevel * scoreContaminantWeight

	switch p.EnergySource {
	case EnergyRenewable:
		score += scoreRenewableBonus
	case EnergyNuclear:
		score += scoreNuclearBonus
	}

	switch p.EndOfLife {
	case EndOfLifeRecycle:
		score += scoreRecycleBonus
	case EndOfLifeReuse:
		score += scoreReuseBonus
	}

	score = math.Max(MinCircularityScore, math.Min(MaxCircularityScore, score))
	return int(math.Round(score))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
