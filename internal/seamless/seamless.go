// Package seamless drives the ordering website through a headless browser.
// It implements order.Surface: one tab, one session, every call blocking
// until the page settles or the wait timeout runs out.
package seamless

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/ajay-gandhi/alfred4.0/internal/match"
	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

type Config struct {
	BaseURL     string
	Username    string
	Password    string
	ReceiptsDir string
	// Timeout bounds every interaction with the page; an expiry is reported
	// as an ordinary error and the pipeline treats it as retryable.
	Timeout  time.Duration
	Headless bool
}

var _ order.Surface = (*Surface)(nil)

// Surface is a live browser session against the ordering site.
type Surface struct {
	cfg Config

	allocCtx    context.Context
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
}

// jsCandidate is what the list-scraping snippets return.
type jsCandidate struct {
	Text   string `json:"text"`
	Handle string `json:"handle"`
}

func New(cfg Config) (*Surface, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if err := os.MkdirAll(cfg.ReceiptsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipts dir: %w", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(1280, 1024),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Surface{cfg: cfg, allocCtx: allocCtx, allocCancel: allocCancel}, nil
}

// Close tears down the browser.
func (s *Surface) Close() {
	if s.tabCancel != nil {
		s.tabCancel()
	}
	s.allocCancel()
}

// run executes actions in the current tab, bounded by the configured timeout
// and by the caller's context.
func (s *Surface) run(ctx context.Context, actions ...chromedp.Action) error {
	if s.tabCtx == nil {
		return fmt.Errorf("session not started; Reset must run first")
	}
	tctx, cancel := context.WithTimeout(s.tabCtx, s.cfg.Timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(tctx, actions...)
}

// clickNth clicks the i-th element matching sel. Handles from the list
// snippets are indexes, so this is how every list selection lands.
func (s *Surface) clickNth(ctx context.Context, sel, handle string) error {
	var clicked bool
	js := fmt.Sprintf(`
		(() => {
			const els = document.querySelectorAll(%q);
			const el = els[%s];
			if (!el) return false;
			el.click();
			return true;
		})()`, sel, handle)
	if err := s.run(ctx, chromedp.Evaluate(js, &clicked)); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("element %s[%s] is gone", sel, handle)
	}
	return nil
}

func (s *Surface) candidates(ctx context.Context, js string) ([]match.Candidate, error) {
	var raw []jsCandidate
	if err := s.run(ctx, chromedp.Evaluate(js, &raw)); err != nil {
		return nil, err
	}
	out := make([]match.Candidate, 0, len(raw))
	for _, c := range raw {
		out = append(out, match.Candidate{DisplayText: c.Text, Handle: c.Handle})
	}
	return out, nil
}

// Reset drops the current tab and logs in again from scratch. The retry
// controller calls this before every attempt so no attempt inherits cart or
// navigation state from a previous one.
func (s *Surface) Reset(ctx context.Context) error {
	if s.tabCancel != nil {
		s.tabCancel()
	}
	s.tabCtx, s.tabCancel = chromedp.NewContext(s.allocCtx)

	err := s.run(ctx,
		chromedp.Navigate(s.cfg.BaseURL+"/corporate/login"),
		chromedp.WaitVisible(selLoginEmail),
		chromedp.SendKeys(selLoginEmail, s.cfg.Username),
		chromedp.SendKeys(selLoginPassword, s.cfg.Password),
		chromedp.Click(selLoginSubmit),
		chromedp.WaitVisible(selHomeReady),
	)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

// Open starts a fresh order and picks the delivery time slot by its label.
func (s *Surface) Open(ctx context.Context, deliveryTime string) error {
	var picked bool
	js := fmt.Sprintf(`
		(() => {
			const sel = document.querySelector(%q);
			if (!sel) return false;
			const want = %q.toLowerCase();
			for (const opt of sel.options) {
				if (opt.text.toLowerCase().includes(want)) {
					sel.value = opt.value;
					sel.dispatchEvent(new Event('change', {bubbles: true}));
					return true;
				}
			}
			return false;
		})()`, selTimeSelect, deliveryTime)

	err := s.run(ctx,
		chromedp.Navigate(s.cfg.BaseURL+"/meals.m"),
		chromedp.WaitVisible(selTimeSelect),
		chromedp.Evaluate(js, &picked),
	)
	if err != nil {
		return err
	}
	if !picked {
		return fmt.Errorf("delivery time %q is not offered", deliveryTime)
	}
	return s.run(ctx,
		chromedp.Click(selTimeContinue),
		chromedp.WaitVisible(selRestaurantLink),
	)
}

func (s *Surface) Restaurants(ctx context.Context) ([]match.Candidate, error) {
	return s.candidates(ctx, jsRestaurantList)
}

func (s *Surface) SelectRestaurant(ctx context.Context, handle string) error {
	if err := s.clickNth(ctx, selRestaurantLink, handle); err != nil {
		return err
	}
	return s.run(ctx, chromedp.WaitVisible(selMenuReady))
}

func (s *Surface) Items(ctx context.Context) ([]match.Candidate, error) {
	return s.candidates(ctx, jsItemList)
}

func (s *Surface) OpenItem(ctx context.Context, handle string) error {
	if err := s.clickNth(ctx, selItemRow, handle); err != nil {
		return err
	}
	return s.run(ctx, chromedp.WaitVisible(selItemDialog))
}

func (s *Surface) Options(ctx context.Context) ([]match.Candidate, error) {
	return s.candidates(ctx, jsOptionList)
}

func (s *Surface) ChooseOption(ctx context.Context, handle string) error {
	return s.clickNth(ctx, selOptionInput, handle)
}

func (s *Surface) AddToCart(ctx context.Context) error {
	return s.run(ctx,
		chromedp.Click(selAddToCart),
		chromedp.WaitNotPresent(selItemDialog),
	)
}

func (s *Surface) Subtotal(ctx context.Context) (order.Money, error) {
	var text string
	if err := s.run(ctx, chromedp.Text(selCartSubtotal, &text)); err != nil {
		return 0, err
	}
	return order.ParseMoney(text)
}

func (s *Surface) MinimumShortfall(ctx context.Context) (order.Money, error) {
	var text string
	if err := s.run(ctx, chromedp.Evaluate(jsMinimumShortfall, &text)); err != nil {
		return 0, err
	}
	return order.ParseMoney(text)
}

func (s *Surface) AddParticipant(ctx context.Context, displayName string) error {
	return s.run(ctx,
		chromedp.WaitVisible(selSplitNameInput),
		chromedp.SendKeys(selSplitNameInput, displayName),
		chromedp.Click(selSplitAddButton),
	)
}

func (s *Surface) ClearOwnShare(ctx context.Context) error {
	return s.run(ctx,
		chromedp.Clear(selOwnShareInput),
		chromedp.SendKeys(selOwnShareInput, "0.00"),
	)
}

func (s *Surface) Allocations(ctx context.Context) (map[string]order.Money, error) {
	rows, err := s.candidates(ctx, jsAllocationRows)
	if err != nil {
		return nil, err
	}
	out := make(map[string]order.Money, len(rows))
	for _, row := range rows {
		amount, err := order.ParseMoney(row.Handle)
		if err != nil {
			return nil, fmt.Errorf("unreadable allocation for %q: %w", row.DisplayText, err)
		}
		out[row.DisplayText] = amount
	}
	return out, nil
}

func (s *Surface) SetContact(ctx context.Context, phone, instructions string) error {
	actions := []chromedp.Action{
		chromedp.Clear(selPhoneInput),
		chromedp.SendKeys(selPhoneInput, phone),
	}
	if instructions != "" {
		actions = append(actions,
			chromedp.Clear(selInstructionsInput),
			chromedp.SendKeys(selInstructionsInput, instructions),
		)
	}
	return s.run(ctx, actions...)
}

// Submit places the order and captures the confirmation page as the
// confirmation artifact. With dryRun it captures the filled checkout page
// instead and touches nothing irreversible.
func (s *Surface) Submit(ctx context.Context, restaurant string, dryRun bool) (string, error) {
	if !dryRun {
		err := s.run(ctx,
			chromedp.Click(selPlaceOrder),
			chromedp.WaitVisible(selConfirmation),
		)
		if err != nil {
			return "", err
		}
	}

	var shot []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&shot)); err != nil {
		return "", err
	}
	name := sanitize(restaurant) + "-" + uuid.NewString()[:8] + ".png"
	if dryRun {
		name = "dryrun-" + name
	}
	path := filepath.Join(s.cfg.ReceiptsDir, name)
	if err := os.WriteFile(path, shot, 0o644); err != nil {
		return "", fmt.Errorf("failed to save confirmation: %w", err)
	}
	return path, nil
}

// sanitize keeps receipt names shell friendly.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, name)
}
