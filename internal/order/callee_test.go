package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalleeSelectorSkipsDonors(t *testing.T) {
	batch := Batch{
		Restaurant: "Osha Thai",
		Participants: []ParticipantOrder{
			{UserID: "donor1", Donor: true},
			{UserID: "a"},
			{UserID: "b"},
			{UserID: "donor2", Donor: true},
		},
	}

	// Pick every eligible index; a donor must never come back.
	for idx := 0; idx < 2; idx++ {
		idx := idx
		sel := NewCalleeSelector(func(n int) int {
			require.Equal(t, 2, n)
			return idx
		})
		got, err := sel.Select(batch)
		require.NoError(t, err)
		assert.Contains(t, []string{"a", "b"}, got)
	}
}

func TestCalleeSelectorAllDonors(t *testing.T) {
	batch := Batch{Participants: []ParticipantOrder{{UserID: "d", Donor: true}}}
	_, err := NewCalleeSelector(nil).Select(batch)
	assert.ErrorIs(t, err, ErrNoEligibleCallee)
}

func TestCalleeSelectorDefaultPickerInRange(t *testing.T) {
	batch := Batch{Participants: []ParticipantOrder{{UserID: "a"}, {UserID: "b"}, {UserID: "c"}}}
	sel := NewCalleeSelector(nil)
	for i := 0; i < 50; i++ {
		got, err := sel.Select(batch)
		require.NoError(t, err)
		assert.Contains(t, []string{"a", "b", "c"}, got)
	}
}
