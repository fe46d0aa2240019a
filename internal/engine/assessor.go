package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/metalca/internal/engine/batch"
	"github.com/rshade/metalca/internal/greenops"
	"github.com/rshade/metalca/internal/impact"
	"github.com/rshade/metalca/internal/insight"
	"github.com/rshade/metalca/internal/logging"
	"github.com/rshade/metalca/internal/scenario"
)

// DefaultConcurrency bounds AssessBatch when no option sets it.
const DefaultConcurrency = 4

// Assessor runs assessments. The zero value is not usable; call New.
type Assessor struct {
	concurrency int
	batchSize   int
	now         func() time.Time
	onProgress  batch.ProgressCallback
}

// Option configures an Assessor.
type Option func(*Assessor)

// WithConcurrency bounds the number of batches evaluated at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(a *Assessor) {
		if n >= 1 {
			a.concurrency = n
		}
	}
}

// WithBatchSize sets how many scenarios one worker evaluates per batch.
// Values outside the batch package limits are ignored.
func WithBatchSize(n int) Option {
	return func(a *Assessor) {
		if n >= batch.MinBatchSize && n <= batch.MaxBatchSize {
			a.batchSize = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Assessor) {
		if now != nil {
			a.now = now
		}
	}
}

// WithProgress registers a callback invoked after each batch of AssessBatch.
func WithProgress(fn batch.ProgressCallback) Option {
	return func(a *Assessor) {
		a.onProgress = fn
	}
}

// New returns an Assessor.
func New(opts ...Option) *Assessor {
	a := &Assessor{
		concurrency: DefaultConcurrency,
		batchSize:   batch.MinBatchSize,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess evaluates one parameter set. Errors from the impact model are
// returned unwrapped so callers can match *impact.ReferenceError.
func (a *Assessor) Assess(ctx context.Context, name string, params impact.ProcessParameters) (*Assessment, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess").
		Str("scenario", name).
		Str("material", string(params.Material)).
		Float64("mass_kg", params.Mass).
		Msg("starting assessment")

	report, err := impact.ComputeImpact(params)
	if err != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("scenario", name).
			Err(err).
			Msg("impact computation rejected parameters")
		return nil, err
	}

	created := a.now().UTC()
	assessment := &Assessment{
		ID:              ulid.MustNew(ulid.Timestamp(created), ulid.DefaultEntropy()).String(),
		Name:            name,
		CreatedAt:       created,
		Report:          report,
		Rating:          insight.Rate(report.CircularityScore),
		Recommendations: insight.Recommend(report),
		Summary:         insight.Summarize(report),
		Avoided:         greenops.Avoided(float64(report.Primary.CO2e), float64(report.Comparison.CO2e)),
	}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess").
		Str("assessment_id", assessment.ID).
		Str("scenario", name).
		Str("material", string(report.MaterialKey)).
		Int("circularity_score", report.CircularityScore).
		Int("co2_reduction", report.Reductions.CO2).
		Int64("duration_us", time.Since(start).Microseconds()).
		Msg("assessment complete")

	return assessment, nil
}

// AssessSpec validates spec, converts it and assesses it.
func (a *Assessor) AssessSpec(ctx context.Context, name string, spec scenario.Spec) (*Assessment, error) {
	params, err := spec.Parameters()
	if err != nil {
		return nil, err
	}
	return a.Assess(ctx, name, params)
}

// AssessBatch evaluates every scenario, at most the configured number of
// batches at a time. With a concurrency of 1 the batches run in order. A scenario that fails validation or references an
// unknown key is recorded in its item and does not affect the others. The
// returned error is non-nil only when items is empty or ctx ends before
// every scenario ran; the result is still populated in the latter case.
func (a *Assessor) AssessBatch(ctx context.Context, items []scenario.Named) (*BatchResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	result := &BatchResult{Items: make([]BatchItem, len(items))}
	for i, it := range items {
		result.Items[i].Name = it.Name
	}

	proc, err := batch.NewProcessor[scenario.Named](a.batchSize)
	if err != nil {
		return nil, err
	}
	if a.onProgress != nil {
		proc.WithProgressCallback(a.onProgress)
	}

	callback := func(ctx context.Context, chunk []scenario.Named, offset int) error {
		for i, it := range chunk {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			slot := &result.Items[offset+i]
			slot.Assessment, slot.Err = a.AssessSpec(ctx, it.Name, it.Spec)
		}
		return nil
	}

	var runErr error
	if a.concurrency == 1 {
		runErr = proc.Process(ctx, items, callback)
	} else {
		runErr = proc.ProcessConcurrent(ctx, items, callback, a.concurrency)
	}
	if errors.Is(runErr, batch.ErrEmptyItems) {
		return nil, fmt.Errorf("no scenarios to assess: %w", runErr)
	}

	for i := range result.Items {
		item := &result.Items[i]
		if item.Assessment == nil && item.Err == nil {
			item.Err = ctx.Err()
			if item.Err == nil {
				item.Err = runErr
			}
		}
		if item.Err != nil {
			item.Error = item.Err.Error()
			result.Failed++
			continue
		}
		result.Succeeded++
	}
	result.Duration = time.Since(start)

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "assess_batch").
		Int("scenarios", len(items)).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Int("concurrency", a.concurrency).
		Int("batch_size", proc.GetBatchSize()).
		Int64("duration_ms", result.Duration.Milliseconds()).
		Msg("batch assessment complete")

	if runErr != nil {
		return result, fmt.Errorf("batch interrupted: %w", runErr)
	}
	return result, nil
}
