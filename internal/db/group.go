package db

import (
	"github.com/ajay-gandhi/alfred4.0/internal/match"
	"github.com/ajay-gandhi/alfred4.0/internal/menu"
	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

// GroupOrders builds per-restaurant batches from pending lines. catalogNames
// are the scraped restaurant names; a line whose free-text restaurant
// resolves against them is grouped under the catalog name, so "osha" and
// "Osha Thai" land in the same batch. The second return value maps each
// batch restaurant back to the raw names it absorbed, which is what
// ClearRestaurantOrders needs after a successful submission.
func GroupOrders(lines []PendingOrder, catalogNames []string) ([]order.Batch, map[string][]string) {
	candidates := menu.Candidates(catalogNames)

	var keys []string
	participants := make(map[string][]*order.ParticipantOrder)
	index := make(map[string]map[string]*order.ParticipantOrder)
	raw := make(map[string][]string)
	rawSeen := make(map[string]map[string]bool)

	for _, line := range lines {
		key := line.Restaurant
		if resolved, err := match.Find(candidates, line.Restaurant); err == nil {
			key = resolved
		}
		if index[key] == nil {
			keys = append(keys, key)
			index[key] = make(map[string]*order.ParticipantOrder)
			rawSeen[key] = make(map[string]bool)
		}
		if !rawSeen[key][line.Restaurant] {
			rawSeen[key][line.Restaurant] = true
			raw[key] = append(raw[key], line.Restaurant)
		}

		p := index[key][line.UserID]
		if p == nil {
			p = &order.ParticipantOrder{UserID: line.UserID}
			index[key][line.UserID] = p
			participants[key] = append(participants[key], p)
		}
		if line.IsDonor {
			p.Donor = true
			continue
		}
		p.Items = append(p.Items, order.ItemSelection{Name: line.Item, Options: line.Options})
	}

	batches := make([]order.Batch, 0, len(keys))
	for _, key := range keys {
		b := order.Batch{Restaurant: key}
		for _, p := range participants[key] {
			b.Participants = append(b.Participants, *p)
		}
		batches = append(batches, b)
	}
	return batches, raw
}
