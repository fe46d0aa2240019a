package batch

import (
	"sync"
	"time"
)

// percentMultiplier is used to convert a ratio to percentage (0-100).
const percentMultiplier = 100

// Progress tracks a batch run. It is safe for concurrent use.
type Progress struct {
	totalItems       int
	processedItems   int
	totalBatches     int
	processedBatches int
	batchSize        int
	startTime        time.Time
	lastUpdateTime   time.Time

	mu sync.RWMutex
}

// NewProgress creates a new progress tracker.
func NewProgress(totalItems, totalBatches, batchSize int) *Progress {
	now := time.Now()
	return &Progress{
		totalItems:     totalItems,
		totalBatches:   totalBatches,
		batchSize:      batchSize,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// AddProcessed records one finished batch of n items and returns the state
// right after it.
func (p *Progress) AddProcessed(n int) ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processedItems += n
	p.processedBatches++
	p.lastUpdateTime = time.Now()
	return p.snapshotLocked()
}

// ProgressSnapshot is an immutable view of a Progress.
type ProgressSnapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	BatchSize        int
	PercentComplete  float64
	Elapsed          time.Duration
	LastUpdateTime   time.Time

	// EstimatedRemaining extrapolates from the average time per item so
	// far. It is 0 before the first batch completes and once all are done.
	EstimatedRemaining time.Duration
}

func (p *Progress) snapshotLocked() ProgressSnapshot {
	elapsed := time.Since(p.startTime)
	return ProgressSnapshot{
		TotalItems:         p.totalItems,
		ProcessedItems:     p.processedItems,
		TotalBatches:       p.totalBatches,
		ProcessedBatches:   p.processedBatches,
		BatchSize:          p.batchSize,
		PercentComplete:    p.percentLocked(),
		Elapsed:            elapsed,
		LastUpdateTime:     p.lastUpdateTime,
		EstimatedRemaining: p.remainingLocked(elapsed),
	}
}

func (p *Progress) remainingLocked(elapsed time.Duration) time.Duration {
	if p.processedItems == 0 || p.processedItems >= p.totalItems {
		return 0
	}
	perItem := elapsed / time.Duration(p.processedItems)
	return perItem * time.Duration(p.totalItems-p.processedItems)
}

func (p *Progress) percentLocked() float64 {
	if p.totalItems == 0 {
		return 0
	}
	return float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
}
