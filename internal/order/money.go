package order

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in cents. The ordering site renders dollar amounts as
// text, so values only ever enter the system through ParseMoney.
type Money int64

// ParseMoney reads amounts as the site renders them: "$12.34", "12.34",
// "$1,024.00". Negative amounts (refund lines) keep their sign.
func ParseMoney(s string) (Money, error) {
	t := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(t, "-") {
		neg = true
		t = t[1:]
	}
	t = strings.TrimPrefix(t, "$")
	t = strings.ReplaceAll(t, ",", "")
	if t == "" {
		return 0, fmt.Errorf("empty amount %q", s)
	}

	whole, frac := t, "0"
	if i := strings.IndexByte(t, '.'); i >= 0 {
		whole, frac = t[:i], t[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	switch len(frac) {
	case 1:
		frac += "0"
	case 2:
	default:
		return 0, fmt.Errorf("malformed amount %q", s)
	}

	d, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	c, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	cents := d*100 + c
	if neg {
		cents = -cents
	}
	return Money(cents), nil
}

func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
