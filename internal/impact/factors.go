package impact

import "sort"

// Coefficients are per-kilogram base impacts of one production route.
type Coefficients struct {
	CO2e      float64 `json:"co2e"      yaml:"co2e"`      // kg CO2e / kg
	Energy    float64 `json:"energy"    yaml:"energy"`    // MJ / kg
	Depletion float64 `json:"depletion" yaml:"depletion"` // kg resource / kg
	Water     float64 `json:"water"     yaml:"water"`     // L / kg
}

// MaterialFactors is the reference data of one supported metal.
type MaterialFactors struct {
	Key  Material `json:"key"  yaml:"key"`
	Name string   `json:"name" yaml:"name"`

	Virgin Coefficients `json:"virgin" yaml:"virgin"`
	Scrap  Coefficients `json:"scrap"  yaml:"scrap"`

	// MeltingReferenceTemp is in °C.
	MeltingReferenceTemp float64 `json:"melting_reference_temp" yaml:"melting_reference_temp"`
	// TypicalEfficiency is the reference conversion efficiency in percent.
	TypicalEfficiency float64 `json:"typical_efficiency" yaml:"typical_efficiency"`
	// SeparationComplexity rates multi-alloy disassembly difficulty, 1-10.
	SeparationComplexity int `json:"separation_complexity" yaml:"separation_complexity"`
}

// Reference tables. They are populated once at package init and never
// written afterwards; callers only reach them through the lookup functions.
//
//nolint:gochecknoglobals // Read-only reference data.
var (
	materials = map[Material]MaterialFactors{
		"aluminum": {
			Key: "aluminum", Name: "Aluminum",
			Virgin:               Coefficients{CO2e: 12, Energy: 170, Depletion: 6, Water: 20},
			Scrap:                Coefficients{CO2e: 0.6, Energy: 10, Depletion: 0.1, Water: 2},
			MeltingReferenceTemp: 660, TypicalEfficiency: 85, SeparationComplexity: 2,
		},
		"copper": {
			Key: "copper", Name: "Copper",
			Virgin:               Coefficients{CO2e: 8, Energy: 120, Depletion: 10, Water: 25},
			Scrap:                Coefficients{CO2e: 0.5, Energy: 9, Depletion: 0.2, Water: 3},
			MeltingReferenceTemp: 1085, TypicalEfficiency: 90, SeparationComplexity: 3,
		},
		"steel": {
			Key: "steel", Name: "Steel",
			Virgin:               Coefficients{CO2e: 2.1, Energy: 25, Depletion: 1.5, Water: 3},
			Scrap:                Coefficients{CO2e: 0.6, Energy: 8, Depletion: 0.1, Water: 0.5},
			MeltingReferenceTemp: 1370, TypicalEfficiency: 88, SeparationComplexity: 4,
		},
		"stainless_steel": {
			Key: "stainless_steel", Name: "Stainless Steel",
			Virgin:               Coefficients{CO2e: 6.8, Energy: 85, Depletion: 4.2, Water: 12},
			Scrap:                Coefficients{CO2e: 1.2, Energy: 15, Depletion: 0.3, Water: 2},
			MeltingReferenceTemp: 1400, TypicalEfficiency: 82, SeparationComplexity: 6,
		},
		"titanium": {
			Key: "titanium", Name: "Titanium",
			Virgin:               Coefficients{CO2e: 45, Energy: 420, Depletion: 35, Water: 80},
			Scrap:                Coefficients{CO2e: 8, Energy: 45, Depletion: 2, Water: 12},
			MeltingReferenceTemp: 1668, TypicalEfficiency: 75, SeparationComplexity: 8,
		},
		"nickel": {
			Key: "nickel", Name: "Nickel",
			Virgin:               Coefficients{CO2e: 15, Energy: 180, Depletion: 12, Water: 35},
			Scrap:                Coefficients{CO2e: 2.5, Energy: 22, Depletion: 0.8, Water: 4},
			MeltingReferenceTemp: 1455, TypicalEfficiency: 85, SeparationComplexity: 5,
		},
		"zinc": {
			Key: "zinc", Name: "Zinc",
			Virgin:               Coefficients{CO2e: 3.2, Energy: 45, Depletion: 2.8, Water: 8},
			Scrap:                Coefficients{CO2e: 0.8, Energy: 12, Depletion: 0.15, Water: 1.5},
			MeltingReferenceTemp: 420, TypicalEfficiency: 90, SeparationComplexity: 2,
		},
		"lead": {
			Key: "lead", Name: "Lead",
			Virgin:               Coefficients{CO2e: 2.8, Energy: 35, Depletion: 3.5, Water: 6},
			Scrap:                Coefficients{CO2e: 0.4, Energy: 8, Depletion: 0.12, Water: 1},
			MeltingReferenceTemp: 328, TypicalEfficiency: 95, SeparationComplexity: 1,
		},
		"lithium": {
			Key: "lithium", Name: "Lithium",
			Virgin:               Coefficients{CO2e: 35, Energy: 400, Depletion: 30, Water: 60},
			Scrap:                Coefficients{CO2e: 3, Energy: 35, Depletion: 0.8, Water: 6},
			MeltingReferenceTemp: 181, TypicalEfficiency: 70, SeparationComplexity: 7,
		},
		"rare_earth": {
			Key: "rare_earth", Name: "Rare Earth Elements",
			Virgin:               Coefficients{CO2e: 60, Energy: 650, Depletion: 45, Water: 120},
			Scrap:                Coefficients{CO2e: 12, Energy: 85, Depletion: 3, Water: 15},
			MeltingReferenceTemp: 1500, TypicalEfficiency: 65, SeparationComplexity: 10,
		},
	}

	energyMultipliers = map[EnergySource]float64{
		EnergyGrid:          1.0,
		EnergyRenewable:     0.1,
		EnergyCoal:          1.8,
		EnergyNaturalGas:    0.7,
		EnergyNuclear:       0.05,
		EnergyHydroelectric: 0.02,
	}

	transportMultipliers = map[TransportMode]float64{
		TransportTruck:    1.0,
		TransportRail:     0.4,
		TransportShip:     0.2,
		TransportPipeline: 0.1,
	}

	endOfLifeMultipliers = map[EndOfLife]float64{
		EndOfLifeRecycle:      0.1,
		EndOfLifeLandfill:     1.2,
		EndOfLifeIncineration: 0.8,
		EndOfLifeReuse:        0.05,
		EndOfLifeHazardous:    1.5,
	}

	priorUseMultipliers = map[PriorUse]float64{
		PriorUseAutomotive:   1.2,
		PriorUseConstruction: 0.9,
		PriorUseElectronics:  1.5,
		PriorUsePackaging:    0.8,
		PriorUseAerospace:    1.8,
		PriorUseIndustrial:   1.1,
		PriorUseConsumer:     1.0,
	}
)

// LookupMaterial returns the reference factors of key.
func LookupMaterial(key Material) (MaterialFactors, error) {
	f, ok := materials[key]
	if !ok {
		return MaterialFactors{}, unresolved(TableMaterial, string(key))
	}
	return f, nil
}

// Materials returns every supported material ordered by key.
func Materials() []MaterialFactors {
	out := make([]MaterialFactors, 0, len(materials))
	for _, f := range materials {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// EnergySources returns the accepted energy sources in sorted order.
func EnergySources() []EnergySource { return sortedKeys(energyMultipliers) }

// TransportModes returns the accepted transport modes in sorted order.
func TransportModes() []TransportMode { return sortedKeys(transportMultipliers) }

// EndOfLifeOptions returns the accepted end-of-life scenarios in sorted order.
func EndOfLifeOptions() []EndOfLife { return sortedKeys(endOfLifeMultipliers) }

// PriorUses returns the accepted prior-use categories in sorted order.
func PriorUses() []PriorUse { return sortedKeys(priorUseMultipliers) }

func sortedKeys[K ~string](m map[K]float64) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Catalog lists every key the model accepts.
type Catalog struct {
	Materials      []MaterialFactors `json:"materials"       yaml:"materials"`
	EnergySources  []EnergySource    `json:"energy_sources"  yaml:"energy_sources"`
	TransportModes []TransportMode   `json:"transport_modes" yaml:"transport_modes"`
	EndOfLife      []EndOfLife       `json:"end_of_life"     yaml:"end_of_life"`
	PriorUses      []PriorUse        `json:"previous_uses"   yaml:"previous_uses"`
}

// ReferenceCatalog returns the reference tables in sorted order.
func ReferenceCatalog() Catalog {
	return Catalog{
		Materials:      Materials(),
		EnergySources:  EnergySources(),
		TransportModes: TransportModes(),
		EndOfLife:      EndOfLifeOptions(),
		PriorUses:      PriorUses(),
	}
}
