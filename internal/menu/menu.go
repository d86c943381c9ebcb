// Package menu holds the scraped menu catalog model. The catalog is written
// only by the out-of-band scraping job and read during automation runs.
package menu

import "github.com/ajay-gandhi/alfred4.0/internal/match"

// Item is one orderable dish with the option names its page offers.
type Item struct {
	Name    string   `json:"name"`
	Price   string   `json:"price,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Restaurant is one restaurant's scraped menu.
type Restaurant struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Candidates adapts restaurant names for fuzzy matching; the handle is the
// name itself, which is also the catalog key.
func Candidates(names []string) []match.Candidate {
	out := make([]match.Candidate, 0, len(names))
	for _, n := range names {
		out = append(out, match.Candidate{DisplayText: n, Handle: n})
	}
	return out
}
