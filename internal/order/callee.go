package order

import (
	"errors"
	"math/rand"
)

// ErrNoEligibleCallee is returned for a batch with only donor participants.
var ErrNoEligibleCallee = errors.New("no eligible callee in batch")

// IndexPicker chooses an index in [0, n). Production uses RandomPicker;
// tests inject a deterministic one.
type IndexPicker func(n int) int

// RandomPicker picks uniformly at random. A fresh pick on every retry is
// fine; callee selection is not required to be idempotent.
func RandomPicker(n int) int { return rand.Intn(n) }

// CalleeSelector picks the single delivery contact for a batch.
type CalleeSelector struct {
	pick IndexPicker
}

func NewCalleeSelector(pick IndexPicker) CalleeSelector {
	if pick == nil {
		pick = RandomPicker
	}
	return CalleeSelector{pick: pick}
}

// Select returns the user ID of one non-donor participant.
func (s CalleeSelector) Select(batch Batch) (string, error) {
	eligible := batch.NonDonors()
	if len(eligible) == 0 {
		return "", ErrNoEligibleCallee
	}
	return eligible[s.pick(len(eligible))].UserID, nil
}
