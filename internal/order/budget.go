package order

// Violation reports a batch that blew the per-person budget. Retrying
// reproduces the same menu choices, so a violation is always fatal.
type Violation struct {
	// Excess is the batch total beyond participantCount * ceiling.
	Excess Money
	// UserID is the participant with the single largest allocation, first
	// one wins on ties.
	UserID string
}

// ValidateBudget checks the site-reported allocations against the per-person
// ceiling. It returns nil when every allocation is at or below the ceiling.
func ValidateBudget(allocations []Allocation, ceiling Money) *Violation {
	if len(allocations) == 0 {
		return nil
	}

	var total Money
	max := allocations[0]
	for _, a := range allocations {
		total += a.Amount
		if a.Amount > max.Amount {
			max = a
		}
	}
	if max.Amount <= ceiling {
		return nil
	}

	return &Violation{
		Excess: total - Money(len(allocations))*ceiling,
		UserID: max.UserID,
	}
}
