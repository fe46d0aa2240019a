// Package greenops expresses carbon figures as everyday equivalencies.
//
// Avoided or emitted kg CO2e is converted into EPA-published equivalencies
// (miles driven, smartphones charged, tree seedlings grown, days of home
// electricity). The package also normalises mass units, which the scenario
// loader reuses for material quantities.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven is miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays is days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText renders the type by name in JSON and YAML output.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (e *EquivalencyType) UnmarshalText(text []byte) error {
	for t := EquivalencyMilesDriven; t <= EquivalencyHomeDays; t++ {
		if t.String() == string(text) {
			*e = t
			return nil
		}
	}
	return fmt.Errorf("unknown equivalency type %q", text)
}

// CarbonInput is a carbon mass to express as equivalencies.
type CarbonInput struct {
	Value float64 `json:"value"`

	// Unit is one of g, kg, t, lb, optionally suffixed CO2e.
	Unit string `json:"unit"`
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"            yaml:"type"`
	Value          float64         `json:"value"           yaml:"value"`
	FormattedValue string          `json:"formatted_value" yaml:"formatted_value"`
	Label          string          `json:"label"           yaml:"label"`
}

// EquivalencyOutput contains all equivalencies of one carbon figure.
type EquivalencyOutput struct {
	InputKg float64             `json:"input_kg" yaml:"input_kg"`
	Results []EquivalencyResult `json:"results"  yaml:"results"`

	// DisplayText is the prose form, e.g.
	// "Equivalent to driving ~781 miles or charging ~18,248 smartphones".
	DisplayText string `json:"display_text" yaml:"display_text"`

	// CompactText is the abbreviated form, e.g. "(≈ 781 mi, 18,248 phones)".
	CompactText string `json:"compact_text" yaml:"compact_text"`

	IsEmpty bool `json:"is_empty" yaml:"is_empty"`
}
