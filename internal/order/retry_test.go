package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner returns canned outcomes in order, repeating the last one.
type scriptedRunner struct {
	outcomes []StepOutcome
	state    *batchState
	runs     int
	resets   int
	resetErr error
}

func (s *scriptedRunner) Reset(ctx context.Context) error {
	s.resets++
	return s.resetErr
}

func (s *scriptedRunner) Run(ctx context.Context, b Batch) (StepOutcome, *batchState) {
	out := s.outcomes[len(s.outcomes)-1]
	if s.runs < len(s.outcomes) {
		out = s.outcomes[s.runs]
	}
	s.runs++
	st := s.state
	if st == nil {
		st = &batchState{}
	}
	return out, st
}

func TestRetrierExhaustsBudgetExactly(t *testing.T) {
	sr := &scriptedRunner{outcomes: []StepOutcome{Retryable("timed out")}}
	r := NewRetrier(sr, 3)

	res := r.Run(context.Background(), Batch{Restaurant: "Osha Thai"})

	assert.False(t, res.OK)
	assert.Equal(t, 3, sr.runs, "every attempt in the budget is used, never more")
	assert.Equal(t, 3, sr.resets, "session is reset before every attempt")
	assert.Len(t, res.Reasons, 3)
}

func TestRetrierFatalNeverRetried(t *testing.T) {
	sr := &scriptedRunner{outcomes: []StepOutcome{Fatal("restaurant gone")}}
	r := NewRetrier(sr, 3)

	res := r.Run(context.Background(), Batch{Restaurant: "Osha Thai"})

	assert.False(t, res.OK)
	assert.Equal(t, 1, sr.runs)
	assert.Equal(t, []string{"restaurant gone"}, res.Reasons)
}

func TestRetrierRecoversOnLaterAttempt(t *testing.T) {
	sr := &scriptedRunner{
		outcomes: []StepOutcome{Retryable("timed out"), Continue()},
		state: &batchState{
			calleeID:        "a",
			confirmationRef: "receipts/osha.png",
			warnings:        []string{"skipped Satay for b: not on the menu"},
			allocations:     []Allocation{{UserID: "a", Amount: 1200}},
		},
	}
	r := NewRetrier(sr, 3)

	res := r.Run(context.Background(), Batch{Restaurant: "Osha Thai"})

	require.True(t, res.OK)
	assert.Equal(t, 2, sr.runs)
	assert.Equal(t, "a", res.CalleeID)
	assert.Equal(t, "receipts/osha.png", res.ConfirmationRef)
	assert.Equal(t, []string{"skipped Satay for b: not on the menu"}, res.Warnings)
	assert.Equal(t, []Allocation{{UserID: "a", Amount: 1200}}, res.Allocations)
}

func TestRetrierAccumulatesReasonsAcrossAttempts(t *testing.T) {
	sr := &scriptedRunner{outcomes: []StepOutcome{
		Retryable("timed out"),
		Fatal("over budget"),
	}}
	r := NewRetrier(sr, 3)

	res := r.Run(context.Background(), Batch{Restaurant: "Osha Thai"})

	assert.Equal(t, []string{"timed out", "over budget"}, res.Reasons)
}

func TestRetrierResetFailureConsumesAttempt(t *testing.T) {
	sr := &scriptedRunner{
		outcomes: []StepOutcome{Continue()},
		resetErr: errors.New("browser crashed"),
	}
	r := NewRetrier(sr, 2)

	res := r.Run(context.Background(), Batch{Restaurant: "Osha Thai"})

	assert.False(t, res.OK)
	assert.Zero(t, sr.runs)
	assert.Len(t, res.Reasons, 2)
}
