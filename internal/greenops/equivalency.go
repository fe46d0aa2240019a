package greenops

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// equivalencyDef pairs an equivalency with its EPA factor and label.
type equivalencyDef struct {
	Type   EquivalencyType
	Factor float64
	Label  string
}

// equivalencies are evaluated in display priority order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var equivalencies = []equivalencyDef{
	{EquivalencyMilesDriven, EPAMilesDrivenFactor, "miles driven"},
	{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged"},
	{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years"},
	{EquivalencyHomeDays, EPAHomeDayFactor, "days of home electricity"},
}

// Calculate normalizes input to kilograms and expresses it as EPA
// equivalencies.
//
// Normalization errors are returned with an empty output. A value below
// MinEquivalencyThresholdKg yields an empty output with InputKg set and no
// error. An Inf/NaN result yields ErrCalculationOverflow.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	results := make([]EquivalencyResult, 0, len(equivalencies))
	for _, def := range equivalencies {
		v := kg / def.Factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           def.Type,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          def.Label,
		})
	}

	miles, phones := results[0].FormattedValue, results[1].FormattedValue

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			miles, phones),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones)", miles, phones),
	}, nil
}

// Avoided expresses the emissions avoided by the comparison pathway,
// primaryKg - comparisonKg, as equivalencies. No saving, or a failed
// calculation, yields an empty output; failures are logged, not returned.
func Avoided(primaryKg, comparisonKg float64) EquivalencyOutput {
	saved := primaryKg - comparisonKg
	if saved <= 0 {
		return EquivalencyOutput{IsEmpty: true}
	}

	out, err := Calculate(CarbonInput{Value: saved, Unit: "kg"})
	if err != nil {
		log.Warn().
			Str("component", "greenops").
			Err(err).
			Float64("saved_kg", saved).
			Msg("avoided-emission equivalency failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

// formatEquivalencyValue scales million/billion values and rounds the rest
// to a comma-separated integer.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
