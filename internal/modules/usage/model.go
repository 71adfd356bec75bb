package usage

import "errors"

// ErrQuotaExhausted is returned when a user has no language-understanding
// calls remaining for the current month.
var ErrQuotaExhausted = errors.New("monthly call quota exhausted")

// DefaultMonthlyCalls is the number of calls granted per month.
const DefaultMonthlyCalls = 100
