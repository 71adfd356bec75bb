// README: Order service: creation, slot updates, and lifecycle transitions.
package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reason codes surface engine failures to the dialogue layer as typed
// result values; they are never raised as errors past the orchestrator.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonOrderNotFound     Reason = "orderNotFound"
	ReasonNotModifiable     Reason = "notModifiable"
	ReasonNotConfirmable    Reason = "notConfirmable"
	ReasonNotCancellable    Reason = "notCancellable"
	ReasonNotConfirmed      Reason = "notConfirmed"
	ReasonItemNotFound      Reason = "itemNotFound"
	ReasonItemAlreadyExists Reason = "itemAlreadyExists"
	ReasonError             Reason = "error"
)

// Result is the outcome of a single store operation.
type Result struct {
	Success        bool
	Reason         Reason
	OrderNumber    string
	HasAllRequired bool
}

func failure(reason Reason) Result {
	return Result{Success: false, Reason: reason}
}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// PrecheckModifiable is the shared gate every mutating operation runs
// first: a cancelled order, or a confirmed order that has been paid, can
// never change again.
func PrecheckModifiable(o *Order) Reason {
	if o == nil {
		return ReasonOrderNotFound
	}
	if o.Terminal() {
		return ReasonNotModifiable
	}
	return ReasonNone
}

type CreateCommand struct {
	UserID        string
	ChatSessionID string
	Intent        string

	PickupAddress  string
	PickupPlace    string
	DropoffAddress string
	DropoffPlace   string

	Items []Item
	Notes string
}

type CreateSummary struct {
	OrderID        string
	OrderNumber    string
	Status         Status
	HasAllRequired bool
}

// Create persists a new order with a fresh short order number and the
// status derived from the slot invariant.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*CreateSummary, error) {
	now := time.Now()
	o := &Order{
		OrderNumber:    newOrderNumber(),
		UserID:         cmd.UserID,
		ChatSessionID:  cmd.ChatSessionID,
		Intent:         cmd.Intent,
		PickupAddress:  cmd.PickupAddress,
		DropoffAddress: cmd.DropoffAddress,
		Items:          cmd.Items,
		Notes:          cmd.Notes,
		CreatedFrom:    "chat",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// Place names ride along only while the address is unknown.
	if o.PickupAddress == "" {
		o.PickupPlace = cmd.PickupPlace
	}
	if o.DropoffAddress == "" {
		o.DropoffPlace = cmd.DropoffPlace
	}

	hasAll := o.HasAllRequired()
	o.Status = statusFor(hasAll)
	o.PackageStatus = packageStatusFor(o.Status)

	id, err := s.store.Insert(ctx, o)
	if err != nil {
		return nil, err
	}
	return &CreateSummary{
		OrderID:        id,
		OrderNumber:    o.OrderNumber,
		Status:         o.Status,
		HasAllRequired: hasAll,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.store.Get(ctx, id)
}

// FieldUpdate carries the allow-listed partial fields a caller may merge
// into an order. Nil pointers mean "leave unchanged".
type FieldUpdate struct {
	PickupAddress  *string
	DropoffAddress *string
	Items          []Item
	SetItems       bool
	DriverNotes    *string
	Status         *Status
	PackageStatus  *string
}

// UpdateFields merges the supplied fields and recomputes the slot-derived
// status and package status unless the caller supplied them explicitly.
func (s *Service) UpdateFields(ctx context.Context, orderID string, upd FieldUpdate) Result {
	o, err := s.store.Get(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return failure(ReasonOrderNotFound)
	}
	if err != nil {
		return failure(ReasonError)
	}
	if reason := PrecheckModifiable(o); reason != ReasonNone {
		return failure(reason)
	}

	fields := map[string]any{}
	if upd.PickupAddress != nil {
		o.PickupAddress = *upd.PickupAddress
		fields["pickup_address"] = o.PickupAddress
	}
	if upd.DropoffAddress != nil {
		o.DropoffAddress = *upd.DropoffAddress
		fields["dropoff_address"] = o.DropoffAddress
	}
	if upd.SetItems {
		o.Items = upd.Items
		fields["items"] = encodeItems(o.Items)
	}
	if upd.DriverNotes != nil {
		fields["driver_notes"] = *upd.DriverNotes
	}

	hasAll := o.HasAllRequired()
	status := recomputedStatus(o.Status, hasAll)
	if upd.Status != nil {
		status = *upd.Status
	}
	fields["status"] = string(status)

	packageStatus := packageStatusFor(status)
	if upd.PackageStatus != nil {
		packageStatus = *upd.PackageStatus
	}
	fields["package_status"] = packageStatus
	fields["updated_at"] = time.Now()

	if err := s.store.Update(ctx, orderID, fields); err != nil {
		return failure(ReasonError)
	}
	return Result{Success: true, HasAllRequired: hasAll}
}

// UpdateStatus performs an explicit lifecycle transition (confirm or
// cancel). The failure reason names the transition that was refused.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, to Status) Result {
	o, err := s.store.Get(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return failure(ReasonOrderNotFound)
	}
	if err != nil {
		return failure(ReasonError)
	}

	if !CanTransition(o.Status, to) {
		return failure(transitionReason(to))
	}

	fields := map[string]any{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	// A confirmed order is no longer awaiting confirmation.
	if to == StatusConfirmed || to == StatusCancelled {
		fields["package_status"] = ""
	}
	if err := s.store.Update(ctx, orderID, fields); err != nil {
		return failure(ReasonError)
	}
	return Result{Success: true, OrderNumber: o.OrderNumber}
}

func transitionReason(to Status) Reason {
	switch to {
	case StatusConfirmed:
		return ReasonNotConfirmable
	case StatusCancelled:
		return ReasonNotCancellable
	default:
		return ReasonNotModifiable
	}
}

// UpdatePaymentStatus records the payment outcome; legal only once the
// order has been confirmed.
func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID string, status PaymentStatus, paymentType string) Result {
	o, err := s.store.Get(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return failure(ReasonOrderNotFound)
	}
	if err != nil {
		return failure(ReasonError)
	}
	if o.Status != StatusConfirmed {
		return failure(ReasonNotConfirmed)
	}

	fields := map[string]any{
		"payment_status": string(status),
		"payment_type":   paymentType,
		"updated_at":     time.Now(),
	}
	if err := s.store.Update(ctx, orderID, fields); err != nil {
		return failure(ReasonError)
	}
	return Result{Success: true, OrderNumber: o.OrderNumber}
}

// IsActive reports whether the order should still drive the conversation:
// false for missing, cancelled, or confirmed-and-paid orders. Lookup
// errors are treated as not active.
func (s *Service) IsActive(ctx context.Context, orderID string) bool {
	if orderID == "" {
		return false
	}
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return false
	}
	return !o.Terminal()
}

// ItemExists reports whether the named item is already on the order,
// matched case-insensitively.
func (s *Service) ItemExists(ctx context.Context, orderID, itemName string) (bool, error) {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return false, err
	}
	return indexOfItem(o.Items, itemName) >= 0, nil
}

// GetIntent returns the intent recorded at creation, or "" when the order
// is missing.
func (s *Service) GetIntent(ctx context.Context, orderID string) string {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return ""
	}
	return o.Intent
}

func indexOfItem(items []Item, name string) int {
	for i, it := range items {
		if strings.EqualFold(it.Item, name) {
			return i
		}
	}
	return -1
}

func newOrderNumber() string {
	// Short human-facing code: the first segment of a v4 UUID.
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
