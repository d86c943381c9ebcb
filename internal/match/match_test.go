package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	candidates := []Candidate{
		{DisplayText: "Extreme Pizza", Handle: "h1"},
		{DisplayText: "Pizza My Heart", Handle: "h2"},
		{DisplayText: "Osha Thai", Handle: "h3"},
	}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"case-insensitive substring", "extreme", "h1"},
		{"exact text", "Osha Thai", "h3"},
		{"first match wins on shared word", "pizza", "h1"},
		{"surrounding whitespace ignored", "  thai ", "h3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(candidates, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindNotFound(t *testing.T) {
	candidates := []Candidate{{DisplayText: "Pizza", Handle: "h1"}}

	_, err := Find(candidates, "sushi")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Find(candidates, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Find(nil, "pizza")
	assert.ErrorIs(t, err, ErrNotFound)
}
