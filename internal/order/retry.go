package order

import (
	"context"
	"log"
)

// DefaultMaxAttempts is the total attempt budget per batch: the first try
// plus two retries.
const DefaultMaxAttempts = 3

// batchRunner is what the retry controller drives; satisfied by *Pipeline
// and by fakes in tests.
type batchRunner interface {
	Reset(ctx context.Context) error
	Run(ctx context.Context, b Batch) (StepOutcome, *batchState)
}

// Retrier wraps the pipeline with a bounded attempt budget. A retryable
// failure gets a fresh attempt from the first step on a reset session; a
// fatal failure ends the batch immediately.
type Retrier struct {
	runner      batchRunner
	maxAttempts int
}

func NewRetrier(runner batchRunner, maxAttempts int) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Retrier{runner: runner, maxAttempts: maxAttempts}
}

// Run drives one batch to a terminal BatchResult. Exactly one result comes
// out regardless of how the attempts went.
func (r *Retrier) Run(ctx context.Context, b Batch) BatchResult {
	var reasons []string
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if err := r.runner.Reset(ctx); err != nil {
			log.Printf("retry: reset before attempt %d failed for %q: %v", attempt, b.Restaurant, err)
			reasons = append(reasons, "could not reset the ordering session: "+err.Error())
			continue
		}

		outcome, st := r.runner.Run(ctx, b)
		switch {
		case outcome.ShouldContinue():
			return BatchResult{
				Restaurant:      b.Restaurant,
				OK:              true,
				CalleeID:        st.calleeID,
				ConfirmationRef: st.confirmationRef,
				Warnings:        st.warnings,
				Allocations:     st.allocations,
			}
		case outcome.IsFatal():
			reasons = append(reasons, outcome.Reasons()...)
			return BatchResult{Restaurant: b.Restaurant, Reasons: reasons}
		default:
			reasons = append(reasons, outcome.Reasons()...)
			log.Printf("retry: attempt %d/%d for %q failed: %v", attempt, r.maxAttempts, b.Restaurant, outcome.Reasons())
		}
	}
	return BatchResult{Restaurant: b.Restaurant, Reasons: reasons}
}
