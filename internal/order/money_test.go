package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"$12.34", 1234},
		{"12.34", 1234},
		{"$0.05", 5},
		{"$25", 2500},
		{"$1,024.00", 102400},
		{" $3.5 ", 350},
		{"-$2.50", -250},
	}
	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseMoneyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "$", "free", "$1.234", "$1..2"} {
		_, err := ParseMoney(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "$12.05", Money(1205).String())
	assert.Equal(t, "$0.00", Money(0).String())
	assert.Equal(t, "-$3.50", Money(-350).String())
}
