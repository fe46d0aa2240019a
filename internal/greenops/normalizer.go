package greenops

import (
	"math"
	"strings"
)

// co2eSuffix is accepted after any mass unit for carbon figures.
const co2eSuffix = "co2e"

// unitFactor returns the kilogram conversion of unit, matching case-insensitively
// and ignoring a trailing "CO2e".
func unitFactor(unit string) (float64, bool) {
	u := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), co2eSuffix)
	switch u {
	case "g":
		return GramsToKg, true
	case "", "kg":
		return KgToKg, true
	case "t":
		return TonsToKg, true
	case "lb":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts value in unit to kilograms. Recognized units are g,
// kg, t and lb, each optionally suffixed "CO2e"; an empty unit means kg.
//
// Returns ErrNegativeValue for negative values, ErrInvalidUnit for
// unrecognized units and ErrCalculationOverflow for Inf/NaN input or result.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}
	return result, nil
}

// IsRecognizedUnit reports whether NormalizeToKg accepts unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}

// IsMassUnit reports whether unit is a plain mass unit: g, kg, t, lb or
// empty. Unlike IsRecognizedUnit it rejects the "CO2e" suffix.
func IsMassUnit(unit string) bool {
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(unit)), co2eSuffix) {
		return false
	}
	return IsRecognizedUnit(unit)
}
