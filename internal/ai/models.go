// README: Canonical extraction result types and the provider wire adapter.
package ai

import (
	"encoding/json"
	"fmt"
)

// Intent classifies a turn from a user with no active order.
type Intent string

const (
	IntentNone           Intent = ""
	IntentPickup         Intent = "pickup"
	IntentDropoff        Intent = "dropoff"
	IntentSuggestion     Intent = "suggestion"
	IntentSuggestPickup  Intent = "suggestPickup"
	IntentSuggestDropoff Intent = "suggestDropoff"
	IntentInfo           Intent = "info"
	IntentGreetings      Intent = "greetings"
	IntentOutOfScope     Intent = "oos"
)

// Action classifies a turn from a user with an active order.
type Action string

const (
	ActionNone       Action = ""
	ActionModify     Action = "modify"
	ActionConfirm    Action = "confirm"
	ActionCancel     Action = "cancel"
	ActionInfo       Action = "info"
	ActionOutOfScope Action = "oos"
	ActionNewOrder   Action = "newOrder"
)

// MutationType is the kind of item change requested on an active order.
type MutationType string

const (
	MutationAdd     MutationType = "add"
	MutationRemove  MutationType = "remove"
	MutationReplace MutationType = "replace"
)

// ItemSlot is one requested item on a new order.
type ItemSlot struct {
	Item     string
	Quantity int
}

// ItemMutation is one requested change to an active order's item list.
type ItemMutation struct {
	Type     MutationType
	Item     string
	Quantity int
	NewItem  string
}

// ExtractionResult is the normalized NLU output for one user turn.
// Exactly one of Intent (new-order turns) or Action (active-order turns)
// is set; Items and Mutations follow the same split. Address fields take
// precedence over place names: when both arrive the place is dropped.
type ExtractionResult struct {
	Intent Intent
	Action Action

	PickupAddress  string
	PickupPlace    string
	DropoffAddress string
	DropoffPlace   string

	Items     []ItemSlot
	Mutations []ItemMutation

	Notes string
	Topic string
}

// Wire shapes. The providers reply with the legacy hyphenated field names
// the prompts were written for; nothing outside this package sees them.

type itemWire struct {
	Type     string `json:"type,omitempty"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity,omitempty"`
	NewItem  string `json:"new_item,omitempty"`
}

type resultWire struct {
	Intent         string     `json:"intent"`
	Action         string     `json:"action"`
	PickupAddress  *string    `json:"pickup-address"`
	PickupPlace    *string    `json:"pickup-place"`
	DropoffAddress *string    `json:"dropoff-address"`
	DropoffPlace   *string    `json:"dropoff-place"`
	Items          []itemWire `json:"items"`
	Notes          *string    `json:"notes"`
	Topic          *string    `json:"topic"`
}

var intentByWire = map[string]Intent{
	"pickup":          IntentPickup,
	"dropoff":         IntentDropoff,
	"suggestion":      IntentSuggestion,
	"suggest-pickup":  IntentSuggestPickup,
	"suggest-dropoff": IntentSuggestDropoff,
	"information":     IntentInfo,
	"greetings":       IntentGreetings,
	"out-of-scope":    IntentOutOfScope,
}

var actionByWire = map[string]Action{
	"modify-order":  ActionModify,
	"confirm-order": ActionConfirm,
	"cancel-order":  ActionCancel,
	"information":   ActionInfo,
	"out-of-scope":  ActionOutOfScope,
	"new-order":     ActionNewOrder,
}

// DecodeNewOrder parses a provider reply for a user with no active order.
// Unknown intents degrade to out-of-scope rather than failing the turn.
func DecodeNewOrder(raw []byte) (*ExtractionResult, error) {
	var w resultWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode new-order extraction: %w", err)
	}
	r := fromWire(&w)
	intent, ok := intentByWire[w.Intent]
	if !ok {
		intent = IntentOutOfScope
	}
	r.Intent = intent
	for _, it := range w.Items {
		if it.Item == "" {
			continue
		}
		q := it.Quantity
		if q < 1 {
			q = 1
		}
		r.Items = append(r.Items, ItemSlot{Item: it.Item, Quantity: q})
	}
	return r, nil
}

// DecodeActiveOrder parses a provider reply for a user with an active order.
// Items in this schema are mutations; a missing type defaults to add so a
// bare item list still means "add these".
func DecodeActiveOrder(raw []byte) (*ExtractionResult, error) {
	var w resultWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode active-order extraction: %w", err)
	}
	r := fromWire(&w)
	action, ok := actionByWire[w.Action]
	if !ok {
		action = ActionOutOfScope
	}
	r.Action = action
	for _, it := range w.Items {
		if it.Item == "" {
			continue
		}
		q := it.Quantity
		if q < 1 {
			q = 1
		}
		mt := MutationType(it.Type)
		if mt == "" {
			mt = MutationAdd
		}
		r.Mutations = append(r.Mutations, ItemMutation{Type: mt, Item: it.Item, Quantity: q, NewItem: it.NewItem})
	}
	return r, nil
}

func fromWire(w *resultWire) *ExtractionResult {
	r := &ExtractionResult{
		PickupAddress:  deref(w.PickupAddress),
		PickupPlace:    deref(w.PickupPlace),
		DropoffAddress: deref(w.DropoffAddress),
		DropoffPlace:   deref(w.DropoffPlace),
		Notes:          deref(w.Notes),
		Topic:          deref(w.Topic),
	}
	// An address is self-sufficient; the place name is only kept while
	// there is no address for that side.
	if r.PickupAddress != "" {
		r.PickupPlace = ""
	}
	if r.DropoffAddress != "" {
		r.DropoffPlace = ""
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
