package seamless

import (
	"context"
	"fmt"
	"log"

	"github.com/chromedp/chromedp"

	"github.com/ajay-gandhi/alfred4.0/internal/menu"
)

const selDialogClose = `#productDetails button[name="cancel"]`

// MenuStore is where scraped menus land; satisfied by *db.DB.
type MenuStore interface {
	UpsertMenu(ctx context.Context, r menu.Restaurant) error
}

// ScrapeMenus walks every restaurant offered for the delivery time and
// stores its items and option names. It runs out-of-band, never during an
// automation run, since both share the one browser session.
func (s *Surface) ScrapeMenus(ctx context.Context, deliveryTime string, store MenuStore) (int, error) {
	if err := s.Reset(ctx); err != nil {
		return 0, err
	}
	if err := s.Open(ctx, deliveryTime); err != nil {
		return 0, err
	}
	restaurants, err := s.Restaurants(ctx)
	if err != nil {
		return 0, err
	}

	scraped := 0
	for _, r := range restaurants {
		// The restaurant list is a fresh page each time; re-open it so the
		// index handles stay valid.
		if err := s.Open(ctx, deliveryTime); err != nil {
			return scraped, err
		}
		if err := s.SelectRestaurant(ctx, r.Handle); err != nil {
			log.Printf("scrape: skipping %q: %v", r.DisplayText, err)
			continue
		}
		m, err := s.scrapeMenu(ctx, r.DisplayText)
		if err != nil {
			log.Printf("scrape: incomplete menu for %q: %v", r.DisplayText, err)
			continue
		}
		if err := store.UpsertMenu(ctx, m); err != nil {
			return scraped, fmt.Errorf("failed to store menu for %s: %w", r.DisplayText, err)
		}
		scraped++
	}
	return scraped, nil
}

func (s *Surface) scrapeMenu(ctx context.Context, name string) (menu.Restaurant, error) {
	m := menu.Restaurant{Name: name}
	items, err := s.Items(ctx)
	if err != nil {
		return m, err
	}
	for _, it := range items {
		entry := menu.Item{Name: it.DisplayText}
		if err := s.OpenItem(ctx, it.Handle); err != nil {
			return m, err
		}
		options, err := s.Options(ctx)
		if err != nil {
			return m, err
		}
		for _, opt := range options {
			entry.Options = append(entry.Options, opt.DisplayText)
		}
		if err := s.run(ctx,
			chromedp.Click(selDialogClose),
			chromedp.WaitNotPresent(selItemDialog),
		); err != nil {
			return m, err
		}
		m.Items = append(m.Items, entry)
	}
	return m, nil
}
