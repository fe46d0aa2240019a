package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch size limits.
const (
	// MinBatchSize is the minimum allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the maximum allowed batch size.
	MaxBatchSize = 1000
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Common batch processing errors.
const (
	ErrInvalidBatchSize = constError("batch size must be between 1 and 1000")
	ErrNilCallback      = constError("batch callback cannot be nil")
	ErrEmptyItems       = constError("items slice cannot be empty")
)

// BatchCallback processes one batch. start is the index in the full slice
// of the batch's first item.
//
//nolint:revive // BatchCallback is the canonical name for this exported type.
type BatchCallback[T any] func(ctx context.Context, batch []T, start int) error

// ProgressCallback is invoked after each completed batch.
type ProgressCallback func(snapshot ProgressSnapshot)

// Processor runs a callback over fixed-size batches of a slice.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// WithProgressCallback sets the progress callback. Under ProcessConcurrent
// it may be called from several goroutines.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// Process runs callback over the batches in order and stops on the first
// error.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback BatchCallback[T]) error {
	if err := p.check(items, callback); err != nil {
		return err
	}

	bounds := p.CalculateBatches(len(items))
	progress := NewProgress(len(items), len(bounds), p.batchSize)

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := callback(ctx, items[b[0]:b[1]], b[0]); err != nil {
			return fmt.Errorf("batch %d failed: %w", i, err)
		}
		p.report(progress, b[1]-b[0])
	}
	return nil
}

// ProcessConcurrent runs at most maxConcurrency batches at a time. Every
// batch runs even if another fails; the failures are joined. Batches not yet
// started when ctx is cancelled are skipped and report ctx.Err().
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback BatchCallback[T],
	maxConcurrency int,
) error {
	if err := p.check(items, callback); err != nil {
		return err
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	bounds := p.CalculateBatches(len(items))
	progress := NewProgress(len(items), len(bounds), p.batchSize)
	errs := make([]error, len(bounds))

	var g errgroup.Group
	g.SetLimit(maxConcurrency)

	for i, b := range bounds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			if err := callback(ctx, items[b[0]:b[1]], b[0]); err != nil {
				errs[i] = fmt.Errorf("batch %d failed: %w", i, err)
				return nil
			}
			p.report(progress, b[1]-b[0])
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// GetBatchSize returns the configured batch size.
func (p *Processor[T]) GetBatchSize() int {
	return p.batchSize
}

// CalculateBatches returns the [start, end) bounds of every batch.
func (p *Processor[T]) CalculateBatches(totalItems int) [][2]int {
	total := (totalItems + p.batchSize - 1) / p.batchSize
	batches := make([][2]int, total)

	for i := range total {
		start := i * p.batchSize
		batches[i] = [2]int{start, min(start+p.batchSize, totalItems)}
	}
	return batches
}

func (p *Processor[T]) check(items []T, callback BatchCallback[T]) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if callback == nil {
		return ErrNilCallback
	}
	return nil
}

func (p *Processor[T]) report(progress *Progress, n int) {
	snap := progress.AddProcessed(n)
	if p.onProgress != nil {
		p.onProgress(snap)
	}
}
