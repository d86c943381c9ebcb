package order

import (
	"context"
	"errors"
	"log"

	"github.com/ajay-gandhi/alfred4.0/internal/match"
)

// PipelineConfig carries the per-run knobs the steps need.
type PipelineConfig struct {
	// DeliveryTime is the slot label to pick on the site, e.g. "11:45 AM".
	DeliveryTime string
	// Ceiling is the per-person budget; site allocations above it fail the
	// batch.
	Ceiling Money
	// Instructions is an optional note for the courier.
	Instructions string
	// DryRun captures the filled checkout page instead of placing the order.
	DryRun bool
}

// Pipeline runs the ordered step sequence for one batch against the site:
// configure-restaurant, fill-items, fill-participants, select-callee, then
// the final submission. Steps run strictly in sequence because each depends
// on the session state the previous one left on the page.
type Pipeline struct {
	surface Surface
	users   Directory
	callees CalleeSelector
	cfg     PipelineConfig
}

func NewPipeline(surface Surface, users Directory, callees CalleeSelector, cfg PipelineConfig) *Pipeline {
	return &Pipeline{surface: surface, users: users, callees: callees, cfg: cfg}
}

// batchState is the result-so-far threaded through the steps. Each step
// writes only its own fields and may read what earlier steps wrote.
type batchState struct {
	// fill-items
	itemTotals map[string]Money // per-participant subtotal delta
	warnings   []string

	// fill-participants
	users       map[string]User
	allocations []Allocation // site-reported, in participant order

	// select-callee
	calleeID string

	// submission
	confirmationRef string
}

type step struct {
	name string
	fn   func(ctx context.Context, b Batch, st *batchState) StepOutcome
}

// Reset discards the site session. The retry controller calls this before
// every attempt so no attempt ever sees another attempt's partial state.
func (p *Pipeline) Reset(ctx context.Context) error {
	return p.surface.Reset(ctx)
}

// Run executes one full attempt for the batch. Any panic escaping a step is
// caught here and converted to a retryable outcome so the retry controller
// always sees a well-formed result.
func (p *Pipeline) Run(ctx context.Context, b Batch) (outcome StepOutcome, st *batchState) {
	st = &batchState{
		itemTotals: make(map[string]Money),
		users:      make(map[string]User),
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline: panic during %q batch: %v", b.Restaurant, r)
			outcome = Retryable("unexpected failure while ordering from %s: %v", b.Restaurant, r)
		}
	}()

	steps := []step{
		{"configure-restaurant", p.configureRestaurant},
		{"fill-items", p.fillItems},
		{"fill-participants", p.fillParticipants},
		{"select-callee", p.selectCallee},
	}
	for _, s := range steps {
		out := s.fn(ctx, b, st)
		if !out.ShouldContinue() {
			log.Printf("pipeline: step %s halted for %q: %v", s.name, b.Restaurant, out.Reasons())
			return out, st
		}
	}
	return p.submit(ctx, b, st), st
}

// configureRestaurant navigates to the ordering flow, picks the delivery
// time and selects the restaurant. A restaurant that is not on the page at
// all is fatal; anything else is treated as transient.
func (p *Pipeline) configureRestaurant(ctx context.Context, b Batch, st *batchState) StepOutcome {
	if err := p.surface.Open(ctx, p.cfg.DeliveryTime); err != nil {
		return Retryable("could not open the ordering page: %v", err)
	}
	restaurants, err := p.surface.Restaurants(ctx)
	if err != nil {
		return Retryable("could not list restaurants: %v", err)
	}
	handle, err := match.Find(restaurants, b.Restaurant)
	if err != nil {
		if errors.Is(err, match.ErrNotFound) {
			return Fatal("restaurant %q is not available for this delivery time", b.Restaurant)
		}
		return Retryable("restaurant lookup failed: %v", err)
	}
	if err := p.surface.SelectRestaurant(ctx, handle); err != nil {
		return Retryable("could not select restaurant %q: %v", b.Restaurant, err)
	}
	return Continue()
}

// fillItems adds every participant's items to the cart, recording each
// participant's subtotal delta. An item or option the menu does not carry is
// skipped with a warning rather than failing the batch.
func (p *Pipeline) fillItems(ctx context.Context, b Batch, st *batchState) StepOutcome {
	for _, participant := range b.Participants {
		before, err := p.surface.Subtotal(ctx)
		if err != nil {
			return Retryable("could not read cart subtotal: %v", err)
		}
		for _, item := range participant.Items {
			if out := p.addItem(ctx, participant.UserID, item, st); !out.ShouldContinue() {
				return out
			}
		}
		after, err := p.surface.Subtotal(ctx)
		if err != nil {
			return Retryable("could not read cart subtotal: %v", err)
		}
		st.itemTotals[participant.UserID] = after - before
	}

	shortfall, err := p.surface.MinimumShortfall(ctx)
	if err != nil {
		return Retryable("could not read the delivery minimum: %v", err)
	}
	if shortfall > 0 {
		return Retryable("order is %s short of %s's delivery minimum", shortfall, b.Restaurant)
	}
	return Continue()
}

func (p *Pipeline) addItem(ctx context.Context, userID string, item ItemSelection, st *batchState) StepOutcome {
	items, err := p.surface.Items(ctx)
	if err != nil {
		return Retryable("could not list menu items: %v", err)
	}
	handle, err := match.Find(items, item.Name)
	if err != nil {
		st.warnings = append(st.warnings, "skipped "+item.Name+" for "+userID+": not on the menu")
		return Continue()
	}
	if err := p.surface.OpenItem(ctx, handle); err != nil {
		return Retryable("could not open item %q: %v", item.Name, err)
	}
	for _, opt := range item.Options {
		options, err := p.surface.Options(ctx)
		if err != nil {
			return Retryable("could not list options for %q: %v", item.Name, err)
		}
		optHandle, err := match.Find(options, opt)
		if err != nil {
			st.warnings = append(st.warnings, "skipped option "+opt+" on "+item.Name+" for "+userID)
			continue
		}
		if err := p.surface.ChooseOption(ctx, optHandle); err != nil {
			return Retryable("could not choose option %q on %q: %v", opt, item.Name, err)
		}
	}
	if err := p.surface.AddToCart(ctx); err != nil {
		return Retryable("could not add %q to the cart: %v", item.Name, err)
	}
	return Continue()
}

// fillParticipants enters every non-donor's display name into the cost-split
// UI, zeroes the ordering account's own share, then checks the allocations
// the site computed against the ceiling.
func (p *Pipeline) fillParticipants(ctx context.Context, b Batch, st *batchState) StepOutcome {
	eligible := b.NonDonors()
	for _, participant := range eligible {
		u, err := p.users.GetUser(ctx, participant.UserID)
		if err != nil {
			return Fatal("%s is not registered; ask them to run the info command", participant.UserID)
		}
		st.users[participant.UserID] = u
		if err := p.surface.AddParticipant(ctx, u.DisplayName); err != nil {
			return Retryable("could not add %s to the split: %v", u.DisplayName, err)
		}
	}
	if err := p.surface.ClearOwnShare(ctx); err != nil {
		return Retryable("could not clear the account's own share: %v", err)
	}

	reported, err := p.surface.Allocations(ctx)
	if err != nil {
		return Retryable("could not read cost allocations: %v", err)
	}
	st.allocations = st.allocations[:0]
	for _, participant := range eligible {
		amount, ok := reported[st.users[participant.UserID].DisplayName]
		if !ok {
			// The split UI occasionally renders names slowly; fall back to
			// the participant's own subtotal delta.
			amount = st.itemTotals[participant.UserID]
		}
		st.allocations = append(st.allocations, Allocation{UserID: participant.UserID, Amount: amount})
	}

	if v := ValidateBudget(st.allocations, p.cfg.Ceiling); v != nil {
		return Fatal("order from %s is %s over budget (%s has the largest share)",
			b.Restaurant, v.Excess, v.UserID)
	}
	return Continue()
}

// selectCallee picks the delivery contact and enters their phone number.
func (p *Pipeline) selectCallee(ctx context.Context, b Batch, st *batchState) StepOutcome {
	calleeID, err := p.callees.Select(b)
	if err != nil {
		return Fatal("nobody in the %s order can take the delivery call", b.Restaurant)
	}
	u, ok := st.users[calleeID]
	if !ok {
		uu, err := p.users.GetUser(ctx, calleeID)
		if err != nil {
			return Fatal("%s is not registered; ask them to run the info command", calleeID)
		}
		u = uu
	}
	if err := p.surface.SetContact(ctx, u.Phone, p.cfg.Instructions); err != nil {
		return Retryable("could not set the delivery contact: %v", err)
	}
	st.calleeID = calleeID
	return Continue()
}

func (p *Pipeline) submit(ctx context.Context, b Batch, st *batchState) StepOutcome {
	ref, err := p.surface.Submit(ctx, b.Restaurant, p.cfg.DryRun)
	if err != nil {
		return Retryable("could not submit the %s order: %v", b.Restaurant, err)
	}
	st.confirmationRef = ref
	return Continue()
}
