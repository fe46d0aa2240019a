package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToKg(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		unit    string
		wantKg  float64
		errType error
	}{
		{name: "grams", value: 1000, unit: "g", wantKg: 1},
		{name: "kilograms", value: 150, unit: "kg", wantKg: 150},
		{name: "empty unit means kg", value: 150, unit: "", wantKg: 150},
		{name: "metric tons", value: 1, unit: "t", wantKg: 1000},
		{name: "pounds", value: 100, unit: "lb", wantKg: 45.3592},
		{name: "gCO2e", value: 150000, unit: "gCO2e", wantKg: 150},
		{name: "case insensitive", value: 2, unit: "T", wantKg: 2000},
		{name: "padded", value: 2, unit: " kg ", wantKg: 2},
		{name: "negative", value: -1, unit: "kg", errType: ErrNegativeValue},
		{name: "unknown unit", value: 1, unit: "oz", errType: ErrInvalidUnit},
		{name: "NaN", value: math.NaN(), unit: "kg", errType: ErrCalculationOverflow},
		{name: "Inf", value: math.Inf(1), unit: "kg", errType: ErrCalculationOverflow},
		{name: "overflow", value: math.MaxFloat64, unit: "t", errType: ErrCalculationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeToKg(tt.value, tt.unit)
			if tt.errType != nil {
				require.ErrorIs(t, err, tt.errType)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKg, got, 1e-9)
		})
	}
}

func TestIsRecognizedUnit(t *testing.T) {
	for _, u := range []string{"g", "kg", "t", "lb", "kgCO2e", "LB"} {
		assert.True(t, IsRecognizedUnit(u), u)
	}
	for _, u := range []string{"oz", "stone", "kilo"} {
		assert.False(t, IsRecognizedUnit(u), u)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "18,248", FormatNumber(18248))
	assert.Equal(t, "52,700 kg CO2e", FormatQuantity(52700, "kg CO2e"))
	assert.Equal(t, "71", FormatQuantity(71, ""))
	assert.Equal(t, "~1.5 billion", FormatLarge(1_500_000_000))
	assert.Equal(t, "~2.5 million", FormatLarge(2_500_000))
	assert.Equal(t, "999,999", FormatLarge(999_999))
}

func TestIsMassUnit(t *testing.T) {
	for _, unit := range []string{"", "g", "kg", "KG", " t ", "lb"} {
		assert.True(t, IsMassUnit(unit), "unit %q", unit)
	}
	for _, unit := range []string{"tCO2e", "kgCO2e", "co2e", "oz"} {
		assert.False(t, IsMassUnit(unit), "unit %q", unit)
		assert.Equal(t, unit != "oz", IsRecognizedUnit(unit), "carbon units still normalise: %q", unit)
	}
}
