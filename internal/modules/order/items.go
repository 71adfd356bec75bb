// README: Item mutation engine: add/remove/replace against the current item list.
package order

import (
	"context"
	"errors"
	"time"
)

type MutationType string

const (
	MutationAdd     MutationType = "add"
	MutationRemove  MutationType = "remove"
	MutationReplace MutationType = "replace"
)

// Mutation is one requested change to the item list. Quantity defaults
// to 1; NewItem is only meaningful for replace (and as the appended name
// for an add that carries one).
type Mutation struct {
	Type     MutationType
	Item     string
	Quantity int
	NewItem  string
}

// ApplyItemMutations resolves the whole batch against an in-memory view
// of the item list in caller order, then persists once. The first invalid
// mutation fails the batch with its reason and nothing is written, so the
// caller always gets one deterministic (success, hasAllRequired) pair per
// turn. Quantities never persist at zero or below; a remove that drains
// an item deletes its entry.
func (s *Service) ApplyItemMutations(ctx context.Context, orderID string, mutations []Mutation) Result {
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

	items := make([]Item, len(o.Items))
	copy(items, o.Items)

	for _, m := range mutations {
		quantity := m.Quantity
		if quantity < 1 {
			quantity = 1
		}
		idx := indexOfItem(items, m.Item)

		switch m.Type {
		case MutationAdd:
			if idx >= 0 {
				items[idx].Quantity += quantity
				break
			}
			name := m.Item
			if m.NewItem != "" {
				name = m.NewItem
			}
			items = append(items, Item{Item: name, Quantity: quantity})

		case MutationRemove:
			if idx < 0 {
				return failure(ReasonItemNotFound)
			}
			items[idx].Quantity -= quantity
			if items[idx].Quantity <= 0 {
				items = append(items[:idx], items[idx+1:]...)
			}

		case MutationReplace:
			if idx >= 0 {
				items[idx].Item = m.NewItem
				break
			}
			if indexOfItem(items, m.NewItem) >= 0 {
				return failure(ReasonItemAlreadyExists)
			}
			items = append(items, Item{Item: m.NewItem, Quantity: quantity})

		default:
			return failure(ReasonError)
		}
	}

	o.Items = items
	hasAll := o.HasAllRequired()
	status := recomputedStatus(o.Status, hasAll)

	fields := map[string]any{
		"items":          encodeItems(items),
		"status":         string(status),
		"package_status": packageStatusFor(status),
		"updated_at":     time.Now(),
	}
	if err := s.store.Update(ctx, orderID, fields); err != nil {
		return failure(ReasonError)
	}
	return Result{Success: true, HasAllRequired: hasAll}
}
