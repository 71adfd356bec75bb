// README: Order persistence over the document store.
package order

import (
	"context"
	"errors"
	"time"

	"courier/internal/docstore"
)

var ErrNotFound = errors.New("order not found")

type Store struct {
	docs docstore.Collection
}

func NewStore(store docstore.Store) *Store {
	return &Store{docs: store.Collection("orders")}
}

func (s *Store) Insert(ctx context.Context, o *Order) (string, error) {
	return s.docs.Add(ctx, encodeOrder(o))
}

func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	data, err := s.docs.Get(ctx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o := decodeOrder(id, data)
	return o, nil
}

func (s *Store) Update(ctx context.Context, id string, fields map[string]any) error {
	err := s.docs.Update(ctx, id, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func encodeOrder(o *Order) map[string]any {
	return map[string]any{
		"order_number":    o.OrderNumber,
		"user_id":         o.UserID,
		"chat_session_id": o.ChatSessionID,
		"intent":          o.Intent,
		"status":          string(o.Status),
		"payment_status":  string(o.PaymentStatus),
		"payment_type":    o.PaymentType,
		"pickup_address":  o.PickupAddress,
		"pickup_place":    o.PickupPlace,
		"dropoff_address": o.DropoffAddress,
		"dropoff_place":   o.DropoffPlace,
		"items":           encodeItems(o.Items),
		"package_status":  o.PackageStatus,
		"notes":           o.Notes,
		"created_from":    o.CreatedFrom,
		"created_at":      o.CreatedAt,
		"updated_at":      o.UpdatedAt,
	}
}

func decodeOrder(id string, data map[string]any) *Order {
	return &Order{
		ID:             id,
		OrderNumber:    str(data["order_number"]),
		UserID:         str(data["user_id"]),
		ChatSessionID:  str(data["chat_session_id"]),
		Intent:         str(data["intent"]),
		Status:         Status(str(data["status"])),
		PaymentStatus:  PaymentStatus(str(data["payment_status"])),
		PaymentType:    str(data["payment_type"]),
		PickupAddress:  str(data["pickup_address"]),
		PickupPlace:    str(data["pickup_place"]),
		DropoffAddress: str(data["dropoff_address"]),
		DropoffPlace:   str(data["dropoff_place"]),
		Items:          decodeItems(data["items"]),
		PackageStatus:  str(data["package_status"]),
		Notes:          str(data["notes"]),
		CreatedFrom:    str(data["created_from"]),
		CreatedAt:      when(data["created_at"]),
		UpdatedAt:      when(data["updated_at"]),
	}
}

func encodeItems(items []Item) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{"item": it.Item, "quantity": it.Quantity}
	}
	return out
}

func decodeItems(v any) []Item {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	items := make([]Item, 0, len(arr))
	for _, e := range arr {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, Item{Item: str(m["item"]), Quantity: count(m["quantity"])})
	}
	return items
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// count normalises the numeric types the document store may hand back.
func count(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func when(v any) time.Time {
	t, _ := v.(time.Time)
	return t
}
