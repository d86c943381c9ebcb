package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

func TestFormatRunResultMixedOutcomes(t *testing.T) {
	res := order.RunResult{
		RunID: "run-1",
		Batches: []order.BatchResult{
			{
				Restaurant:      "Pizza Place",
				OK:              true,
				CalleeID:        "a",
				ConfirmationRef: "receipts/pizza.png",
				Warnings:        []string{"skipped anchovies on Cheese Pizza for b"},
			},
			{
				Restaurant: "Osha Thai",
				Reasons:    []string{"timed out", "order is $8.00 short of Osha Thai's delivery minimum"},
			},
		},
	}

	msg := FormatRunResult(res)

	assert.Contains(t, msg, "**Pizza Place**")
	assert.Contains(t, msg, "<@a>")
	assert.Contains(t, msg, "receipts/pizza.png")
	assert.Contains(t, msg, "skipped anchovies")
	assert.Contains(t, msg, "**Osha Thai** — not ordered")
	assert.Contains(t, msg, "$8.00 short")
}

func TestFormatRunResultEmpty(t *testing.T) {
	msg := FormatRunResult(order.RunResult{})
	assert.Contains(t, msg, "nothing was pending")
}
