package engine_test

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/engine/batch"
	"github.com/rshade/metalca/internal/impact"
	"github.com/rshade/metalca/internal/insight"
	"github.com/rshade/metalca/internal/scenario"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

func referenceParams(t *testing.T) impact.ProcessParameters {
	t.Helper()
	p, err := scenario.Defaults().Parameters()
	require.NoError(t, err)
	return p
}

func TestAssess_ReferenceScenario(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	a := engine.New(engine.WithClock(fixedClock))
	got, err := a.Assess(ctx, "reference", referenceParams(t))
	require.NoError(t, err)

	id, err := ulid.Parse(got.ID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(fixedClock()), id.Time())
	assert.Equal(t, fixedClock(), got.CreatedAt)
	assert.Equal(t, "reference", got.Name)

	assert.Equal(t, 71, got.Report.CircularityScore)
	assert.Equal(t, insight.RatingGood, got.Rating)
	assert.NotEmpty(t, got.Recommendations)
	assert.Contains(t, got.Summary, "71/100 (Good)")

	require.False(t, got.Avoided.IsEmpty)
	assert.InDelta(t, 3900, got.Avoided.InputKg, 1e-9)

	assert.Contains(t, logs.String(), `"message":"assessment complete"`)
	assert.Contains(t, logs.String(), `"component":"engine"`)
}

func TestAssess_UniqueIDs(t *testing.T) {
	a := engine.New(engine.WithClock(fixedClock))
	p := referenceParams(t)

	first, err := a.Assess(context.Background(), "a", p)
	require.NoError(t, err)
	second, err := a.Assess(context.Background(), "b", p)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Report, second.Report)
}

func TestAssess_ReferenceErrorUnwrapped(t *testing.T) {
	p := referenceParams(t)
	p.EnergySource = "wind-ish"

	_, err := engine.New().Assess(context.Background(), "bad", p)

	var refErr *impact.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, impact.TableEnergySource, refErr.Table)
}

func TestAssessSpec_Validation(t *testing.T) {
	s := scenario.Defaults()
	s.Efficiency = 0

	_, err := engine.New().AssessSpec(context.Background(), "bad", s)
	require.ErrorIs(t, err, scenario.ErrInvalidScenario)
}

func TestAssessBatch(t *testing.T) {
	good := scenario.Defaults()

	copperScrap := scenario.Defaults()
	copperScrap.Material = "copper"
	copperScrap.Source = "scrap"
	copperScrap.PreviousUse = "electronics"

	unknown := scenario.Defaults()
	unknown.Material = "unobtainium"

	invalid := scenario.Defaults()
	invalid.RecycledPercent = 140

	items := []scenario.Named{
		{Name: "reference", Spec: good},
		{Name: "unknown", Spec: unknown},
		{Name: "copper-scrap", Spec: copperScrap},
		{Name: "invalid", Spec: invalid},
	}

	var mu sync.Mutex
	var progress []batch.ProgressSnapshot
	a := engine.New(
		engine.WithConcurrency(3),
		engine.WithProgress(func(s batch.ProgressSnapshot) {
			mu.Lock()
			defer mu.Unlock()
			progress = append(progress, s)
		}),
	)

	res, err := a.AssessBatch(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, res.Items, 4)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 2, res.Failed)
	assert.Len(t, progress, 4)

	assert.Equal(t, "reference", res.Items[0].Name)
	require.NotNil(t, res.Items[0].Assessment)
	assert.Equal(t, 71, res.Items[0].Assessment.Report.CircularityScore)

	assert.Nil(t, res.Items[1].Assessment)
	require.ErrorIs(t, res.Items[1].Err, impact.ErrUnknownMaterial)
	assert.Equal(t, `unknown material "unobtainium"`, res.Items[1].Error)

	require.NotNil(t, res.Items[2].Assessment)
	assert.Equal(t, impact.PriorUseElectronics, res.Items[2].Assessment.Report.PriorUse)

	require.ErrorIs(t, res.Items[3].Err, scenario.ErrInvalidScenario)
}

func TestAssessBatch_MatchesSingle(t *testing.T) {
	var items []scenario.Named
	for _, m := range impact.Materials() {
		s := scenario.Defaults()
		s.Material = string(m.Key)
		items = append(items, scenario.Named{Name: string(m.Key), Spec: s})
	}

	single := engine.New()
	tests := []struct {
		name        string
		concurrency int
		batchSize   int
	}{
		{name: "concurrent batches of three", concurrency: 8, batchSize: 3},
		{name: "in order one at a time", concurrency: 1, batchSize: 1},
		{name: "in order batches of four", concurrency: 1, batchSize: 4},
		{name: "one batch holds everything", concurrency: 2, batchSize: 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.New(engine.WithConcurrency(tt.concurrency), engine.WithBatchSize(tt.batchSize)).
				AssessBatch(context.Background(), items)
			require.NoError(t, err)
			require.Equal(t, len(items), res.Succeeded)

			for i, it := range items {
				want, err := single.AssessSpec(context.Background(), it.Name, it.Spec)
				require.NoError(t, err)
				assert.Equal(t, want.Report, res.Items[i].Assessment.Report, it.Name)
			}
		})
	}
}

func TestAssessBatch_ProgressInOrder(t *testing.T) {
	items := make([]scenario.Named, 5)
	for i := range items {
		items[i] = scenario.Named{Name: fmt.Sprintf("s%d", i), Spec: scenario.Defaults()}
	}

	var snaps []batch.ProgressSnapshot
	a := engine.New(
		engine.WithConcurrency(1),
		engine.WithBatchSize(2),
		engine.WithProgress(func(s batch.ProgressSnapshot) { snaps = append(snaps, s) }),
	)
	_, err := a.AssessBatch(context.Background(), items)
	require.NoError(t, err)

	require.Len(t, snaps, 3)
	for i, want := range []int{2, 4, 5} {
		assert.Equal(t, want, snaps[i].ProcessedItems)
		assert.Equal(t, 2, snaps[i].BatchSize)
	}
	assert.Zero(t, snaps[2].EstimatedRemaining)
}

func TestAssessBatch_Empty(t *testing.T) {
	_, err := engine.New().AssessBatch(context.Background(), nil)
	require.ErrorIs(t, err, batch.ErrEmptyItems)
}

func TestAssessBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []scenario.Named{{Name: "a", Spec: scenario.Defaults()}, {Name: "b", Spec: scenario.Defaults()}}
	res, err := engine.New().AssessBatch(ctx, items)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Failed)
	require.ErrorIs(t, res.Items[0].Err, context.Canceled)
}
