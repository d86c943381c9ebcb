package order

import (
	"context"

	"github.com/ajay-gandhi/alfred4.0/internal/match"
)

// Surface is the external ordering site as the pipeline sees it: one
// mutable browser session, not re-entrant, no transactional guarantees.
// Every call blocks until the site responds or the driver's wait timeout
// elapses; a timeout comes back as an ordinary error and the pipeline
// classifies it as retryable.
//
// The production implementation lives in internal/seamless.
type Surface interface {
	// Reset discards all in-progress session state. The retry controller
	// calls it before every attempt; there is no partial-state resume.
	Reset(ctx context.Context) error

	// Open navigates to the ordering flow and selects the delivery time slot.
	Open(ctx context.Context, deliveryTime string) error

	Restaurants(ctx context.Context) ([]match.Candidate, error)
	SelectRestaurant(ctx context.Context, handle string) error

	Items(ctx context.Context) ([]match.Candidate, error)
	OpenItem(ctx context.Context, handle string) error
	Options(ctx context.Context) ([]match.Candidate, error)
	ChooseOption(ctx context.Context, handle string) error
	AddToCart(ctx context.Context) error

	// Subtotal reads the cart subtotal as currently rendered.
	Subtotal(ctx context.Context) (Money, error)

	// MinimumShortfall reports how far the cart is below the restaurant's
	// delivery minimum; zero means the minimum is met.
	MinimumShortfall(ctx context.Context) (Money, error)

	// AddParticipant adds a display name to the cost-split allocation UI.
	AddParticipant(ctx context.Context, displayName string) error

	// ClearOwnShare zeroes out the ordering account's own allocation.
	ClearOwnShare(ctx context.Context) error

	// Allocations reads the per-name amounts the site computed after all
	// participants are entered.
	Allocations(ctx context.Context) (map[string]Money, error)

	SetContact(ctx context.Context, phone, instructions string) error

	// Submit places the order and returns a confirmation reference keyed by
	// the restaurant name. With dryRun set it captures the filled checkout
	// page instead of placing anything, and still returns a reference.
	Submit(ctx context.Context, restaurant string, dryRun bool) (string, error)
}
