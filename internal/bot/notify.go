package bot

import (
	"fmt"
	"strings"

	"github.com/ajay-gandhi/alfred4.0/internal/order"
)

// FormatRunResult renders a run as one channel message. Failure reasons are
// shown verbatim; they are written for humans by the pipeline steps.
func FormatRunResult(res order.RunResult) string {
	if len(res.Batches) == 0 {
		return "No orders were placed today — nothing was pending."
	}

	var b strings.Builder
	b.WriteString("Lunch order results:\n")
	for _, batch := range res.Batches {
		if batch.OK {
			fmt.Fprintf(&b, "✅ **%s** — ordered! <@%s> will get the delivery call (receipt: %s)\n",
				batch.Restaurant, batch.CalleeID, batch.ConfirmationRef)
			for _, w := range batch.Warnings {
				fmt.Fprintf(&b, "    ⚠️ %s\n", w)
			}
			continue
		}
		fmt.Fprintf(&b, "❌ **%s** — not ordered:\n", batch.Restaurant)
		for _, reason := range batch.Reasons {
			fmt.Fprintf(&b, "    • %s\n", reason)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
