// Package impact estimates the environmental footprint of producing a metal.
//
// It compares a linear pathway (the process as supplied, from virgin ore or
// from scrap) against a circular comparison pathway that blends virgin and
// scrap feedstock by recycled-content percentage. The result carries absolute
// impacts for both pathways, bounded percentage reductions and a clamped
// composite circularity score.
//
// The model is parametric, not a certified LCA. Every call is a pure function
// of its ProcessParameters: no I/O, no shared mutable state, safe for
// concurrent use.
package impact

// Material is the reference-table key of a supported metal (e.g. "aluminum").
type Material string

// Materials in the reference table.
const (
	MaterialAluminum       Material = "aluminum"
	MaterialCopper         Material = "copper"
	MaterialSteel          Material = "steel"
	MaterialStainlessSteel Material = "stainless_steel"
	MaterialTitanium       Material = "titanium"
	MaterialNickel         Material = "nickel"
	MaterialZinc           Material = "zinc"
	MaterialLead           Material = "lead"
	MaterialLithium        Material = "lithium"
	MaterialRareEarth      Material = "rare_earth"
)

// SourceMode identifies the feedstock route of the primary pathway.
type SourceMode string

// Source modes.
const (
	// SourceVirgin is primary production from freshly extracted ore.
	SourceVirgin SourceMode = "virgin"
	// SourceScrap is secondary production from recovered material.
	SourceScrap SourceMode = "scrap"
)

// EnergySource is the dominant process energy supply.
type EnergySource string

// Energy sources accepted by the model.
const (
	EnergyGrid          EnergySource = "grid"
	EnergyRenewable     EnergySource = "renewable"
	EnergyCoal          EnergySource = "coal"
	EnergyNaturalGas    EnergySource = "natural_gas"
	EnergyNuclear       EnergySource = "nuclear"
	EnergyHydroelectric EnergySource = "hydroelectric"
)

// TransportMode is the freight mode used to move the material.
type TransportMode string

// Transport modes accepted by the model.
const (
	TransportTruck    TransportMode = "truck"
	TransportRail     TransportMode = "rail"
	TransportShip     TransportMode = "ship"
	TransportPipeline TransportMode = "pipeline"
)

// EndOfLife is the fate assumed for the material after use.
type EndOfLife string

// End-of-life scenarios accepted by the model.
const (
	EndOfLifeRecycle      EndOfLife = "recycle"
	EndOfLifeLandfill     EndOfLife = "landfill"
	EndOfLifeIncineration EndOfLife = "incineration"
	EndOfLifeReuse        EndOfLife = "reuse"
	EndOfLifeHazardous    EndOfLife = "hazardous"
)

// PriorUse is the application scrap was recovered from. It drives a
// contamination multiplier on scrap emissions.
type PriorUse string

// Prior-use categories accepted by the model.
const (
	PriorUseAutomotive   PriorUse = "automotive"
	PriorUseConstruction PriorUse = "construction"
	PriorUseElectronics  PriorUse = "electronics"
	PriorUsePackaging    PriorUse = "packaging"
	PriorUseAerospace    PriorUse = "aerospace"
	PriorUseIndustrial   PriorUse = "industrial"
	PriorUseConsumer     PriorUse = "consumer"
)

// Source is the feedstock of the primary pathway. It is sealed: the only
// implementations are Virgin and Scrap.
type Source interface {
	// Mode reports which route the source represents.
	Mode() SourceMode

	sealed()
}

// Virgin is primary production. It carries no prior-use history.
type Virgin struct{}

// Mode implements Source.
func (Virgin) Mode() SourceMode { return SourceVirgin }

func (Virgin) sealed() {}

// Scrap is secondary production from recovered material.
type Scrap struct {
	// PriorUse is the application the scrap came from. Empty means unknown
	// and resolves to the neutral multiplier.
	PriorUse PriorUse
}

// Mode implements Source.
func (Scrap) Mode() SourceMode { return SourceScrap }

func (Scrap) sealed() {}

// ProcessParameters is the complete input of one assessment. Range checks
// (mass > 0, efficiency in (0, 100], ...) are the caller's responsibility;
// see the scenario package.
type ProcessParameters struct {
	Material Material
	Source   Source

	// Mass is the processed quantity in kilograms.
	Mass float64

	// TransportDistance is in kilometres.
	TransportDistance float64
	TransportMode     TransportMode

	// RecycledPercent is the recycled content (0-100) of the comparison blend.
	RecycledPercent float64

	EnergySource EnergySource
	EndOfLife    EndOfLife

	// ProcessTemp is the process temperature in °C.
	ProcessTemp float64
	// Efficiency is the conversion efficiency in percent. Must be > 0.
	Efficiency float64

	// ContaminantLevel is in percent.
	ContaminantLevel float64
	// RefiningSteps is the number of refining passes, at least 1.
	RefiningSteps   int
	AlloySeparation bool

	WaterIntensity    float64
	WastePercent      float64
	AirEmissionFactor float64
	LandUseIntensity  float64
}

// priorUseOf returns the prior-use category of a scrap source, or "" for
// anything else.
func priorUseOf(src Source) PriorUse {
	switch s := src.(type) {
	case Scrap:
		return s.PriorUse
	case *Scrap:
		if s != nil {
			return s.PriorUse
		}
	}
	return ""
}

// sourceMode returns the mode of p.Source, treating a nil source as virgin.
// Typed nil pointers keep the mode of their type.
func (p ProcessParameters) sourceMode() SourceMode {
	switch src := p.Source.(type) {
	case nil:
		return SourceVirgin
	case *Scrap:
		if src == nil {
			return SourceScrap
		}
	case *Virgin:
		if src == nil {
			return SourceVirgin
		}
	}
	return p.Source.Mode()
}

// ImpactVector holds the absolute impacts of one pathway, rounded to whole
// units: kg CO2e, MJ, litres, kg depleted resource, kg waste.
type ImpactVector struct {
	CO2e      int64 `json:"co2e"      yaml:"co2e"`
	Energy    int64 `json:"energy"    yaml:"energy"`
	Water     int64 `json:"water"     yaml:"water"`
	Depletion int64 `json:"depletion" yaml:"depletion"`
	Waste     int64 `json:"waste"     yaml:"waste"`
}

// ReductionSet holds the percentage reductions of the comparison pathway
// relative to the primary one.
type ReductionSet struct {
	CO2    int `json:"co2"    yaml:"co2"`
	Energy int `json:"energy" yaml:"energy"`
	Water  int `json:"water"  yaml:"water"`
}

// ImpactReport is the output of ComputeImpact.
type ImpactReport struct {
	// Material is the display name, e.g. "Stainless Steel".
	Material        string     `json:"material"                yaml:"material"`
	MaterialKey     Material   `json:"material_key"            yaml:"material_key"`
	Mass            float64    `json:"mass"                    yaml:"mass"`
	RecycledPercent float64    `json:"recycled_percent"        yaml:"recycled_percent"`
	SourceMode      SourceMode `json:"source_mode"             yaml:"source_mode"`
	PriorUse        PriorUse   `json:"previous_use,omitempty"  yaml:"previous_use,omitempty"`

	Primary    ImpactVector `json:"primary"    yaml:"primary"`
	Comparison ImpactVector `json:"comparison" yaml:"comparison"`

	Reductions       ReductionSet `json:"reductions"        yaml:"reductions"`
	CircularityScore int          `json:"circularity_score" yaml:"circularity_score"`

	// LandUse is informational only; it feeds no other figure.
	LandUse int64 `json:"land_use" yaml:"land_use"`
}
