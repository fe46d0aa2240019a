package greenops

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// Each constant is the kg CO2e of one unit of activity:
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling grown for 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3
)

// Mass conversion factors to kilograms. They apply to material mass and to
// carbon mass alike.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest kg CO2e worth expressing as
	// an equivalency.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
