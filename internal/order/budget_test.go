package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBudgetWithinCeiling(t *testing.T) {
	ceiling := Money(2500)
	tests := []struct {
		name   string
		allocs []Allocation
	}{
		{"single participant at ceiling", []Allocation{{UserID: "a", Amount: 2500}}},
		{"several under ceiling", []Allocation{
			{UserID: "a", Amount: 1200},
			{UserID: "b", Amount: 2499},
			{UserID: "c", Amount: 800},
		}},
		{"no participants", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ValidateBudget(tt.allocs, ceiling))
		})
	}
}

func TestValidateBudgetViolation(t *testing.T) {
	ceiling := Money(2500)

	v := ValidateBudget([]Allocation{{UserID: "a", Amount: 3000}}, ceiling)
	require.NotNil(t, v)
	// excess = 30.00 - 1*25.00
	assert.Equal(t, Money(500), v.Excess)
	assert.Equal(t, "a", v.UserID)

	v = ValidateBudget([]Allocation{
		{UserID: "a", Amount: 1000},
		{UserID: "b", Amount: 2700},
		{UserID: "c", Amount: 2000},
	}, ceiling)
	require.NotNil(t, v)
	// excess = 57.00 - 3*25.00
	assert.Equal(t, Money(-1800), v.Excess)
	assert.Equal(t, "b", v.UserID)
}

func TestValidateBudgetTieGoesToFirst(t *testing.T) {
	v := ValidateBudget([]Allocation{
		{UserID: "a", Amount: 2600},
		{UserID: "b", Amount: 2600},
	}, 2500)
	require.NotNil(t, v)
	assert.Equal(t, "a", v.UserID)
}
