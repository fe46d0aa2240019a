package impact

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is.
var (
	// ErrUnresolvedReference matches every lookup failure: unknown material or
	// an option missing from a mandatory multiplier table.
	ErrUnresolvedReference = constError("unresolved reference")

	// ErrUnknownMaterial matches lookup failures of the material table only.
	ErrUnknownMaterial = constError("unknown material")
)

// Reference tables that can fail a lookup.
const (
	TableMaterial     = "material"
	TableEnergySource = "energy_source"
	TableEndOfLife    = "end_of_life"
	TablePriorUse     = "previous_use"
)

// ReferenceError reports a key that does not resolve in a reference table.
// It signals a caller defect and is never worth retrying.
type ReferenceError struct {
	Table string
	Key   string
}

func (e *ReferenceError) Error() string {
	if e.Table == TableMaterial {
		return fmt.Sprintf("unknown material %q", e.Key)
	}
	return fmt.Sprintf("unresolved %s %q", e.Table, e.Key)
}

// Is makes every ReferenceError match ErrUnresolvedReference, and material
// failures additionally match ErrUnknownMaterial.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrUnresolvedReference:
		return true
	case ErrUnknownMaterial:
		return e.Table == TableMaterial
	default:
		return false
	}
}

func unresolved(table, key string) error {
	return &ReferenceError{Table: table, Key: key}
}
