// README: Order aggregate, status definitions, and slot invariants.
package order

import "time"

type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCancelled  Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentNone    PaymentStatus = ""
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// PackageAwaitingConfirmation is the display status carried while pending.
const PackageAwaitingConfirmation = "awaiting confirmation"

type Item struct {
	Item     string
	Quantity int
}

type Order struct {
	ID            string
	OrderNumber   string
	UserID        string
	ChatSessionID string
	Intent        string
	Status        Status
	PaymentStatus PaymentStatus
	PaymentType   string

	// For each side at most one of address/place is set; the place name
	// is only retained until it resolves to an address.
	PickupAddress  string
	PickupPlace    string
	DropoffAddress string
	DropoffPlace   string

	Items         []Item
	PackageStatus string
	Notes         string
	CreatedFrom   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasAllRequired reports whether every mandatory slot is filled: both
// addresses and at least one item.
func (o *Order) HasAllRequired() bool {
	return o.PickupAddress != "" && o.DropoffAddress != "" && len(o.Items) > 0
}

// Terminal reports whether the order can never be modified again.
func (o *Order) Terminal() bool {
	if o.Status == StatusCancelled {
		return true
	}
	return o.Status == StatusConfirmed && o.PaymentStatus == PaymentSuccess
}

// AllowedTransitions represents the order state flow (diagram) as code.
// pending and incomplete flip automatically as required slots fill and
// empty; confirmed and cancelled are reached only by explicit user action.
var AllowedTransitions = map[Status][]Status{
	StatusIncomplete: {StatusPending, StatusConfirmed, StatusCancelled},
	StatusPending:    {StatusIncomplete, StatusConfirmed, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// statusFor derives the non-terminal status from the slot invariant.
func statusFor(hasAllRequired bool) Status {
	if hasAllRequired {
		return StatusPending
	}
	return StatusIncomplete
}

// recomputedStatus flips pending/incomplete as slots fill and empty but
// never touches a status reached by explicit user action.
func recomputedStatus(current Status, hasAllRequired bool) Status {
	if current == StatusIncomplete || current == StatusPending || current == "" {
		return statusFor(hasAllRequired)
	}
	return current
}

// packageStatusFor derives the display status from the order status.
func packageStatusFor(status Status) string {
	if status == StatusPending {
		return PackageAwaitingConfirmation
	}
	return ""
}
