package greenops

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatQuantity formats a whole-unit quantity followed by its unit.
// Example: FormatQuantity(52700, "kg CO2e") returns "52,700 kg CO2e".
func FormatQuantity(n int64, unit string) string {
	if unit == "" {
		return FormatNumber(n)
	}
	return FormatNumber(n) + " " + unit
}

// FormatLarge formats n as "~X.X billion" or "~X.X million" at or above the
// respective thresholds, and as a comma-separated integer below them.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}

// smallMassKg is the mass below which FormatMass keeps decimals.
const smallMassKg = 10

// FormatMass formats a mass in kilograms. Masses under 10 kg keep three
// significant digits, so 0.4 kg reads "0.4"; larger masses use FormatLarge.
func FormatMass(kg float64) string {
	if kg > 0 && kg < smallMassKg {
		return strconv.FormatFloat(kg, 'g', 3, 64)
	}
	return FormatLarge(kg)
}
