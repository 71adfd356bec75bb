package ai

import (
	"context"
)

// Extractor defines the contract for the language-understanding step.
// The prompt variant is selected by method: new-order turns use the slot
// schema, active-order turns use the action/mutation schema.
// This interface allows for swapping providers (Gemini, canned demo, etc.).
type Extractor interface {
	// ExtractNewOrder classifies a message from a user with no active order.
	ExtractNewOrder(ctx context.Context, userMessage string) (*ExtractionResult, error)

	// ExtractActiveOrder classifies a message from a user with an active order.
	ExtractActiveOrder(ctx context.Context, userMessage string) (*ExtractionResult, error)
}
