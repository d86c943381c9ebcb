// Package order is the order-fulfillment engine: it takes the day's pending
// orders grouped per restaurant and drives each batch through the external
// ordering site, with bounded retry, a per-person budget check, and a single
// delivery contact picked per batch.
package order

import "context"

// ItemSelection is one requested menu item as captured from chat. Names are
// free text and are only resolved against the live menu at submission time.
type ItemSelection struct {
	Name    string
	Options []string
}

// ParticipantOrder is one user's part of a batch. A donor pays into the
// batch total but has no items counted, is never picked as callee, and is
// excluded from stats.
type ParticipantOrder struct {
	UserID string
	Items  []ItemSelection
	Donor  bool
}

// Batch is every participant order destined for one restaurant in one run.
type Batch struct {
	Restaurant   string
	Participants []ParticipantOrder
}

// NonDonors returns the participants eligible for callee selection and
// stats, in batch order.
func (b Batch) NonDonors() []ParticipantOrder {
	var out []ParticipantOrder
	for _, p := range b.Participants {
		if !p.Donor {
			out = append(out, p)
		}
	}
	return out
}

// Allocation is the site's computed cost share for one participant.
type Allocation struct {
	UserID string
	Amount Money
}

// BatchResult is the terminal outcome for one batch. Exactly one is produced
// per input batch, success or not, and it is immutable once created.
type BatchResult struct {
	Restaurant      string
	OK              bool
	CalleeID        string
	ConfirmationRef string
	Warnings        []string
	Reasons         []string
	// Allocations is what each non-donor ended up paying; the runner feeds
	// it to the stats recorder.
	Allocations []Allocation
}

// RunResult collects batch results for one run, in submission order.
type RunResult struct {
	RunID   string
	Batches []BatchResult
}

// User is a registered team member as kept by the user directory.
type User struct {
	ID          string
	DisplayName string
	Phone       string
}

// Directory looks participants up by their chat identity.
type Directory interface {
	GetUser(ctx context.Context, id string) (User, error)
}

// StatsRecorder persists per-participant spend after a batch succeeds. A
// recording failure never fails the batch.
type StatsRecorder interface {
	Record(ctx context.Context, userID, restaurant string, amount Money, items []string, wasCallee bool) error
}
