package impact

import "math"

// Scenario computation constants.
const (
	// referenceWaterIntensity is the water intensity the coefficient tables
	// were calibrated at.
	referenceWaterIntensity = 15.0

	transportEmissionRate = 0.1 // kg CO2e per km per kg before mode multiplier
	airEmissionWeight     = 0.5

	// Recycled content shrinks the comparison transport burden and waste.
	recycledTransportRelief = 0.3
	recycledWasteRelief     = 0.5
)

// rawVector is an unrounded ImpactVector.
type rawVector struct {
	CO2e      float64
	Energy    float64
	Water     float64
	Depletion float64
	Waste     float64
}

func (v rawVector) rounded() ImpactVector {
	return ImpactVector{
		CO2e:      roundUnit(v.CO2e),
		Energy:    roundUnit(v.Energy),
		Water:     roundUnit(v.Water),
		Depletion: roundUnit(v.Depletion),
		Waste:     roundUnit(v.Waste),
	}
}

// scenarioResult carries both pathways at full precision.
type scenarioResult struct {
	Primary    rawVector
	Comparison rawVector
	LandUse    float64
}

// computeScenarios evaluates the primary pathway as supplied and the
// virgin/scrap comparison blend.
func computeScenarios(p ProcessParameters, f FactorSet) scenarioResult {
	m := f.Material
	mass := p.Mass
	waterScale := p.WaterIntensity / referenceWaterIntensity
	process := f.EnergyMultiplier * f.TemperatureFactor * f.EfficiencyFactor

	var primary rawVector
	switch p.sourceMode() {
	case SourceScrap:
		scrapPenalty := f.ContaminationFactor * f.SeparationFactor * f.RefiningFactor
		primary.CO2e = m.Scrap.CO2e * mass * process * scrapPenalty *
			f.PriorUseMultiplier * f.EndOfLifeMultiplier
		// Scrap energy has no prior-use or end-of-life term, unlike CO2e.
		primary.Energy = m.Scrap.Energy * mass * process * scrapPenalty
		primary.Water = m.Scrap.Water * mass * waterScale * f.ContaminationFactor
		primary.Depletion = m.Scrap.Depletion * mass * f.ContaminationFactor
	default:
		primary.CO2e = m.Virgin.CO2e * mass * process * f.EndOfLifeMultiplier
		primary.Energy = m.Virgin.Energy * mass * process
		primary.Water = m.Virgin.Water * mass * waterScale
		primary.Depletion = m.Virgin.Depletion * mass
	}

	transport := p.TransportDistance * transportEmissionRate * mass * f.TransportMultiplier
	primary.CO2e += transport
	primary.CO2e += p.AirEmissionFactor * mass * airEmissionWeight
	primary.Waste = mass * (p.WastePercent / 100) * f.ContaminationFactor

	recycled := p.RecycledPercent / 100
	virginShare := mass * (1 - recycled)
	scrapShare := mass * recycled

	comparison := rawVector{
		CO2e: (virginShare*m.Virgin.CO2e+scrapShare*m.Scrap.CO2e)*process +
			transport*(1-recycled*recycledTransportRelief),
		Energy:    (virginShare*m.Virgin.Energy + scrapShare*m.Scrap.Energy) * process,
		Water:     (virginShare*m.Virgin.Water + scrapShare*m.Scrap.Water) * waterScale,
		Depletion: virginShare*m.Virgin.Depletion + scrapShare*m.Scrap.Depletion,
		Waste:     primary.Waste * (1 - recycled*recycledWasteRelief),
	}

	return scenarioResult{
		Primary:    primary,
		Comparison: comparison,
		LandUse:    p.LandUseIntensity * mass,
	}
}

// roundUnit rounds half away from zero to a whole unit.
func roundUnit(v float64) int64 {
	return int64(math.Round(v))
}
