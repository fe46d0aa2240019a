// Package engine orchestrates assessments: it runs the impact model,
// interprets the report, stamps an identity on the result and evaluates
// scenario batches concurrently.
package engine

import (
	"time"

	"github.com/rshade/metalca/internal/greenops"
	"github.com/rshade/metalca/internal/impact"
	"github.com/rshade/metalca/internal/insight"
)

// Assessment is one evaluated scenario.
type Assessment struct {
	// ID is a ULID, sortable by creation time.
	ID        string    `json:"id"         yaml:"id"`
	Name      string    `json:"name"       yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	Report          impact.ImpactReport      `json:"report"          yaml:"report"`
	Rating          insight.Rating           `json:"rating"          yaml:"rating"`
	Recommendations []insight.Recommendation `json:"recommendations" yaml:"recommendations"`
	Summary         string                   `json:"summary"         yaml:"summary"`

	// Avoided expresses primary minus comparison CO2e as equivalencies.
	Avoided greenops.EquivalencyOutput `json:"avoided" yaml:"avoided"`
}

// BatchItem is the outcome of one scenario in a batch. Exactly one of
// Assessment and Err is set.
type BatchItem struct {
	Name       string      `json:"name"                 yaml:"name"`
	Assessment *Assessment `json:"assessment,omitempty" yaml:"assessment,omitempty"`
	Error      string      `json:"error,omitempty"      yaml:"error,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// BatchResult holds every scenario outcome in input order.
type BatchResult struct {
	Items     []BatchItem   `json:"items"     yaml:"items"`
	Succeeded int           `json:"succeeded" yaml:"succeeded"`
	Failed    int           `json:"failed"    yaml:"failed"`
	Duration  time.Duration `json:"duration"  yaml:"duration"`
}
