package order

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Runner processes a run's batches strictly one at a time — the site is a
// single mutable session and concurrent batches would trample each other's
// carts — and aggregates the per-batch outcomes.
type Runner struct {
	retrier *Retrier
	stats   StatsRecorder
	pause   time.Duration
}

// DefaultBatchPause is the politeness delay between batches.
const DefaultBatchPause = 5 * time.Second

func NewRunner(retrier *Retrier, stats StatsRecorder, pause time.Duration) *Runner {
	if pause <= 0 {
		pause = DefaultBatchPause
	}
	return &Runner{retrier: retrier, stats: stats, pause: pause}
}

// Run drives every batch to a terminal result, in input order. A panic
// anywhere inside the run is caught and the results gathered so far are
// returned rather than lost.
func (r *Runner) Run(ctx context.Context, batches []Batch) (result RunResult) {
	result.RunID = uuid.NewString()
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("run %s: aborted by panic: %v", result.RunID, rec)
		}
	}()

	for i, b := range batches {
		res := r.retrier.Run(ctx, b)
		result.Batches = append(result.Batches, res)
		if res.OK {
			r.recordStats(ctx, b, res)
		}

		if i < len(batches)-1 {
			select {
			case <-time.After(r.pause):
			case <-ctx.Done():
				log.Printf("run %s: cancelled after %d of %d batches", result.RunID, i+1, len(batches))
				return result
			}
		}
	}
	return result
}

// recordStats persists spend for every non-donor of a successful batch.
// Recording is best effort and never retried or allowed to fail the batch.
func (r *Runner) recordStats(ctx context.Context, b Batch, res BatchResult) {
	if r.stats == nil {
		return
	}
	amounts := make(map[string]Money, len(res.Allocations))
	for _, a := range res.Allocations {
		amounts[a.UserID] = a.Amount
	}
	for _, p := range b.NonDonors() {
		var items []string
		for _, it := range p.Items {
			items = append(items, it.Name)
		}
		err := r.stats.Record(ctx, p.UserID, b.Restaurant, amounts[p.UserID], items, p.UserID == res.CalleeID)
		if err != nil {
			log.Printf("run: could not record stats for %s at %s: %v", p.UserID, b.Restaurant, err)
		}
	}
}
