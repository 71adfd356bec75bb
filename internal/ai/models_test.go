package ai

import (
	"context"
	"testing"
)

func TestDecodeNewOrderLegacyKeys(t *testing.T) {
	raw := []byte(`{
		"intent": "pickup",
		"pickup-address": null,
		"pickup-place": "Pizza Pizza",
		"dropoff-address": "12 Main St",
		"dropoff-place": "Staples",
		"items": [{"item": "pizza", "quantity": 2}, {"item": "coke"}],
		"notes": "deliver asap",
		"topic": "Pickup request"
	}`)

	r, err := DecodeNewOrder(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Intent != IntentPickup {
		t.Errorf("intent = %q, want pickup", r.Intent)
	}
	if r.PickupPlace != "Pizza Pizza" || r.PickupAddress != "" {
		t.Errorf("pickup side mangled: %q / %q", r.PickupPlace, r.PickupAddress)
	}
	// The dropoff address wins over the dropoff place name.
	if r.DropoffAddress != "12 Main St" || r.DropoffPlace != "" {
		t.Errorf("address precedence broken: %q / %q", r.DropoffAddress, r.DropoffPlace)
	}
	if len(r.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(r.Items))
	}
	if r.Items[1].Quantity != 1 {
		t.Errorf("missing quantity should default to 1, got %d", r.Items[1].Quantity)
	}
	if r.Topic != "Pickup request" {
		t.Errorf("topic = %q", r.Topic)
	}
}

func TestDecodeNewOrderUnknownIntent(t *testing.T) {
	r, err := DecodeNewOrder([]byte(`{"intent": "route_planning"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Intent != IntentOutOfScope {
		t.Errorf("unknown intent should degrade to oos, got %q", r.Intent)
	}
}

func TestDecodeActiveOrderMutations(t *testing.T) {
	raw := []byte(`{
		"action": "modify-order",
		"items": [
			{"type": "remove", "item": "coke", "quantity": 1},
			{"type": "replace", "item": "cheese pizza", "new_item": "veggie pizza"},
			{"item": "garlic bread"}
		]
	}`)

	r, err := DecodeActiveOrder(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Action != ActionModify {
		t.Fatalf("action = %q, want modify", r.Action)
	}
	if len(r.Mutations) != 3 {
		t.Fatalf("expected 3 mutations, got %d", len(r.Mutations))
	}
	if r.Mutations[0].Type != MutationRemove {
		t.Errorf("mutation 0 type = %q", r.Mutations[0].Type)
	}
	if r.Mutations[1].NewItem != "veggie pizza" {
		t.Errorf("mutation 1 new item = %q", r.Mutations[1].NewItem)
	}
	// An untyped entry is treated as an add with quantity 1.
	if r.Mutations[2].Type != MutationAdd || r.Mutations[2].Quantity != 1 {
		t.Errorf("untyped mutation defaults wrong: %+v", r.Mutations[2])
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	if _, err := DecodeNewOrder([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestCleanJSONString(t *testing.T) {
	in := "```json\n{\"intent\": \"pickup\"}\n```"
	if got := cleanJSONString(in); got != `{"intent": "pickup"}` {
		t.Fatalf("cleanJSONString = %q", got)
	}
}

func TestDemoExtractorRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewDemoExtractor()

	r, err := p.ExtractNewOrder(ctx, "I need a pickup from Pizza Pizza")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if r.Intent != IntentPickup || r.PickupPlace != "Pizza Pizza" {
		t.Fatalf("unexpected demo pickup result: %+v", r)
	}

	r, err = p.ExtractActiveOrder(ctx, "please cancel order")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if r.Action != ActionCancel {
		t.Fatalf("expected cancel action, got %q", r.Action)
	}
}
