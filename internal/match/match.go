// Package match resolves free-text names captured from chat against the
// live-rendered names on the ordering site or in the menu catalog.
package match

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no candidate contains the query.
var ErrNotFound = errors.New("no matching candidate")

// Candidate pairs a displayed name with an opaque handle (a selector, node
// id, or catalog key) the caller can act on.
type Candidate struct {
	DisplayText string
	Handle      string
}

// Find returns the handle of the first candidate whose display text contains
// the query, case-insensitively. First match wins; there is no scoring. Live
// menus render faster than a ranking pass is worth, and chat input is short
// enough that substring containment is almost always unambiguous.
func Find(candidates []Candidate, query string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", ErrNotFound
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.DisplayText), q) {
			return c.Handle, nil
		}
	}
	return "", ErrNotFound
}
