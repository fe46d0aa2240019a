package cli

import (
	"errors"

	"github.com/rshade/metalca/internal/impact"
	"github.com/rshade/metalca/internal/scenario"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Process exit codes.
const (
	ExitOK            = 0
	ExitError         = 1
	ExitInvalidInput  = 2
	ExitBatchFailures = 3
)

// ExitCode maps a command error to the process exit code: invalid or
// unresolvable scenarios exit 2, --fail-on-error batch failures exit 3,
// anything else 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrBatchFailures):
		return ExitBatchFailures
	case errors.Is(err, scenario.ErrInvalidScenario),
		errors.Is(err, scenario.ErrUnsupportedVersion),
		errors.Is(err, impact.ErrUnresolvedReference):
		return ExitInvalidInput
	default:
		return ExitError
	}
}
