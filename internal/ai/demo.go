// README: Canned extractor for demos and local development (no API key needed).
package ai

import (
	"context"
	"strings"
)

// DemoExtractor returns fixed extraction results keyed on message keywords.
// The canned payloads use the same wire format the real provider returns, so
// the adapter path is identical to production.
type DemoExtractor struct{}

func NewDemoExtractor() *DemoExtractor {
	return &DemoExtractor{}
}

func (p *DemoExtractor) ExtractNewOrder(ctx context.Context, userMessage string) (*ExtractionResult, error) {
	return DecodeNewOrder([]byte(pickDemo(userMessage, newOrderDemos, demoNewGreeting)))
}

func (p *DemoExtractor) ExtractActiveOrder(ctx context.Context, userMessage string) (*ExtractionResult, error) {
	return DecodeActiveOrder([]byte(pickDemo(userMessage, activeOrderDemos, demoActiveInfo)))
}

type demoCase struct {
	keyword string
	payload string
}

func pickDemo(message string, cases []demoCase, fallback string) string {
	msg := strings.ToLower(message)
	for _, c := range cases {
		if strings.Contains(msg, c.keyword) {
			return c.payload
		}
	}
	return fallback
}

// Keyword order matters: more specific phrases are listed first.
var newOrderDemos = []demoCase{
	{"pickup address", demoPickupFullAddress},
	{"dropoff address", demoDropoffFullAddress},
	{"pickup", demoPickup},
	{"dropoff", demoDropoff},
	{"suggest", demoSuggestion},
	{"information", demoInformation},
	{"out of scope", demoOutOfScope},
}

var activeOrderDemos = []demoCase{
	{"cancel order", demoCancelOrder},
	{"confirm order", demoConfirmOrder},
	{"remove item", demoRemoveItem},
	{"replace item", demoReplaceItem},
	{"modify item", demoModifyItem},
	{"information", demoActiveInfo},
	{"out of scope", demoActiveOutOfScope},
	{"new order", demoNewOrderAction},
}

const demoPickup = `{
  "intent": "pickup",
  "pickup-address": null,
  "pickup-place": "Pizza Pizza",
  "dropoff-address": null,
  "dropoff-place": null,
  "items": [{"item": "peparoni medium pizza", "quantity": 1}, {"item": "cheese pizza", "quantity": 1}, {"item": "coke", "quantity": 2}],
  "notes": "Please pick up the order from Pizza Pizza and deliver it to my home address.",
  "topic": "Pickup request"
}`

const demoDropoff = `{
  "intent": "dropoff",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": "Staples",
  "items": [{"item": "package", "quantity": 1}],
  "notes": "Please drop off the package at Staples.",
  "topic": "Dropoff request"
}`

const demoPickupFullAddress = `{
  "intent": "pickup",
  "pickup-address": "2235 Sheppard Ave, E, Scarborough, ON",
  "pickup-place": "",
  "dropoff-address": null,
  "dropoff-place": null,
  "items": [{"item": "package", "quantity": 1}],
  "notes": "Please pick up the package from 2235 Sheppard Ave, E, Scarborough, ON and deliver it to my home address.",
  "topic": "Pickup request"
}`

const demoDropoffFullAddress = `{
  "intent": "dropoff",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": "564 Pharmacy Ave, Scarborough, ON",
  "dropoff-place": "",
  "items": [{"item": "package", "quantity": 1}],
  "notes": "Please drop off the package at 564 Pharmacy Ave, Scarborough, ON.",
  "topic": "Dropoff request"
}`

const demoSuggestion = `{
  "intent": "suggestion",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": [{"item": "Pizza", "quantity": 1}],
  "notes": "Suggesting a pizza place near the user's location",
  "topic": "Food suggestion"
}`

const demoInformation = `{
  "intent": "information",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": [{"item": "Burger", "quantity": 1}],
  "notes": "Dietry information",
  "topic": "Nutritional information"
}`

const demoOutOfScope = `{
  "intent": "out-of-scope",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": null,
  "notes": null,
  "topic": "Out of scope"
}`

const demoNewGreeting = `{
  "intent": "greetings",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": null,
  "notes": "Hi there! I can help you with pickups, drop-offs, or finding items near you.",
  "topic": "General Inquiry"
}`

const demoModifyItem = `{
  "action": "modify-order",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": [{"type": "add", "item": "garlic bread", "quantity": 1}],
  "notes": null
}`

const demoRemoveItem = `{
  "action": "modify-order",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": [{"type": "remove", "item": "coke", "quantity": 1}],
  "notes": null
}`

const demoReplaceItem = `{
  "action": "modify-order",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": [{"type": "replace", "item": "cheese pizza", "new_item": "veggie pizza"}],
  "notes": null
}`

const demoConfirmOrder = `{
  "action": "confirm-order",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": null,
  "notes": null
}`

const demoCancelOrder = `{
  "action": "cancel-order",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": null,
  "notes": null
}`

const demoActiveInfo = `{
  "action": "information",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": null,
  "notes": "It looks like you're asking about your order status. Please contact support or check your tracking link."
}`

const demoActiveOutOfScope = `{
  "action": "out-of-scope",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": null,
  "notes": null
}`

const demoNewOrderAction = `{
  "action": "new-order",
  "pickup-address": null,
  "pickup-place": null,
  "dropoff-address": null,
  "dropoff-place": null,
  "items": [],
  "notes": "User want to create a new order."
}`
