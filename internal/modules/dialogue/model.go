// README: Dialogue turn models: responses, suggestion chips, collaborator contracts.
package dialogue

import (
	"context"

	"courier/internal/maps"
)

const (
	MessageTypeText      = "text"
	MessageTypeSelection = "selection"
)

// SuggestionType tells the client how to route the user's next tap.
type SuggestionType string

const (
	SuggestionPickup            SuggestionType = "pickup"
	SuggestionDropoff           SuggestionType = "dropoff"
	SuggestionSuggestPickup     SuggestionType = "suggestPickup"
	SuggestionSuggestDropoff    SuggestionType = "suggestDropoff"
	SuggestionOrderConfirmation SuggestionType = "orderConfirmation"
	SuggestionPaymentTypes      SuggestionType = "paymentTypes"
)

// ResolutionStatus is the outcome of resolving a pickup or dropoff slot.
type ResolutionStatus string

const (
	ResolutionComplete    ResolutionStatus = "complete"
	ResolutionSuggested   ResolutionStatus = "suggested"
	ResolutionNotFound    ResolutionStatus = "notFound"
	ResolutionMissingName ResolutionStatus = "missingName"
)

const (
	LabelConfirmOrder = "Confirm Order"
	LabelCancelOrder  = "Cancel Order"
)

// paymentTypeNames are the fixed chips shown after a confirm succeeds.
var paymentTypeNames = []string{"Credit Card", "Debit Card", "Venmo", "Applepay", "Paypal"}

type Suggestion struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// TurnRequest is one inbound user turn, already authenticated to a user.
type TurnRequest struct {
	UserID       string
	Message      string
	MessageType  string
	OrderID      string
	SessionID    string
	UserLocation string

	// SuggestionType is set only on selection turns and names the chip
	// list the user picked from.
	SuggestionType SuggestionType
}

type Response struct {
	Reply          string         `json:"reply"`
	Suggestions    []Suggestion   `json:"suggestions,omitempty"`
	SuggestionType SuggestionType `json:"suggestionType,omitempty"`
	OrderID        string         `json:"orderId"`
	SessionID      string         `json:"sessionId"`
}

// PlaceSearcher is the slice of the place-search provider the dialogue
// engine needs.
type PlaceSearcher interface {
	Search(ctx context.Context, query, near string, searchType maps.SearchType) ([]maps.Place, error)
}

// QuotaConsumer meters language-understanding calls per user. A nil
// consumer means unmetered.
type QuotaConsumer interface {
	Consume(ctx context.Context, userID string) error
}

func suggestionsFromPlaces(places []maps.Place) []Suggestion {
	out := make([]Suggestion, 0, len(places))
	for _, p := range places {
		out = append(out, Suggestion{Name: p.Name, Address: p.Address})
	}
	return out
}

func labelSuggestions(names ...string) []Suggestion {
	out := make([]Suggestion, 0, len(names))
	for _, n := range names {
		out = append(out, Suggestion{Name: n})
	}
	return out
}

func confirmationPair() []Suggestion {
	return labelSuggestions(LabelConfirmOrder, LabelCancelOrder)
}

func paymentTypeSuggestions() []Suggestion {
	return labelSuggestions(paymentTypeNames...)
}
