package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrInvalidUnit indicates an unrecognized mass unit.
	ErrInvalidUnit = constError("invalid mass unit")

	// ErrNegativeValue indicates a negative mass.
	ErrNegativeValue = constError("negative mass value")

	// ErrCalculationOverflow indicates an Inf or NaN input or result.
	ErrCalculationOverflow = constError("calculation overflow")
)
