// README: Response composer: table of semantic tag + status to reply text.
package dialogue

import (
	"fmt"

	"courier/internal/modules/order"
)

type composeTag string

const (
	tagSlot             composeTag = "slot"
	tagSuggestion       composeTag = "suggestion"
	tagOutOfScope       composeTag = "outOfScope"
	tagNewOrder         composeTag = "newOrder"
	tagModify           composeTag = "modify"
	tagConfirm          composeTag = "confirm"
	tagCancel           composeTag = "cancel"
	tagAddressSelection composeTag = "addressSelection"
	tagPayment          composeTag = "payment"
)

// Address-selection outcomes beyond the shared order reasons.
const (
	statusOrderComplete = "orderComplete"
	statusOrderPending  = "orderPending"
)

const (
	replyFallback          = "I'm here to help you with orders or deliveries. What would you like to do?"
	replyNotUnderstood     = "Sorry, I didn't understand your selection."
	replyGenericFailure    = "Something went wrong on my end. Please try that again."
	replyQuotaExhausted    = "You've reached your monthly assistant limit. It resets at the start of next month."
	replyAskForSuggestions = "What kind of item or place are you looking for suggestions about?"
)

// composeContext carries the handful of values the texts interpolate.
type composeContext struct {
	role    string // "pickup" or "dropoff"
	place   string
	item    string
	orderNo string
}

type composeKey struct {
	tag    composeTag
	status string
}

var composeTable = map[composeKey]func(c composeContext) string{
	{tagSlot, string(ResolutionComplete)}: func(c composeContext) string {
		return fmt.Sprintf("Would you like to confirm the %s?", c.role)
	},
	{tagSlot, string(ResolutionSuggested)}: func(c composeContext) string {
		return fmt.Sprintf("There are a few %s near your selected %s location. Where would you like to %s?",
			c.place, oppositeRole(c.role), c.role)
	},
	{tagSlot, string(ResolutionNotFound)}: func(c composeContext) string {
		return fmt.Sprintf("I couldn't find a nearby %s. Where would you like to %s the %s?",
			c.place, slotVerb(c.role), c.item)
	},
	{tagSlot, string(ResolutionMissingName)}: func(c composeContext) string {
		return fmt.Sprintf("Where would you like to %s the %s? I can suggest some nearby places.",
			slotVerb(c.role), c.item)
	},

	{tagSuggestion, ""}: func(c composeContext) string {
		if c.item == "" {
			return replyAskForSuggestions
		}
		return fmt.Sprintf("Here are some places for %s near you.", c.item)
	},

	{tagOutOfScope, ""}: text("I'm sorry, but I'm not able to help with that. I can assist with pickups, drop-offs, or finding items. What would you like to do?"),
	{tagNewOrder, ""}:   text("I can help you with a new order. Please provide the details of what you need, including pickup and drop-off locations, items, and any notes."),

	{tagModify, ""}:                                    text("Your order has been modified successfully. If you need help with anything else, just let me know!"),
	{tagModify, string(order.ReasonNotModifiable)}:     text("Your order cannot be modified at this time. It may already be confirmed or cancelled. If you need help with anything else, just let me know!"),
	{tagModify, string(order.ReasonOrderNotFound)}:     text("You don't have an active order to modify the items, what would you like to order now?"),
	{tagModify, string(order.ReasonItemNotFound)}:      text("I couldn't find that item on your order, so nothing was changed. Would you like to add it instead?"),
	{tagModify, string(order.ReasonItemAlreadyExists)}: text("That item is already on your order, so nothing was changed. Would you like to change its quantity instead?"),
	{tagModify, string(order.ReasonError)}:             text("Error modifying your order"),

	{tagConfirm, ""}: func(c composeContext) string {
		return fmt.Sprintf("You have confirmed your order. Your order No: %s. How would you like to pay?", c.orderNo)
	},
	{tagConfirm, string(order.ReasonNotConfirmable)}: text("Your order cannot be confirmed at this time. It may already be confirmed or cancelled. If you need help with anything else, just let me know!"),
	{tagConfirm, string(order.ReasonOrderNotFound)}:  text("You don't have an active order to confirm, what would you like to order now?"),
	{tagConfirm, string(order.ReasonError)}:          text("Error confirming your order"),

	{tagCancel, ""}:                                 text("You have cancelled your order. If you need help with anything else, just let me know!"),
	{tagCancel, string(order.ReasonNotCancellable)}: text("Your order cannot be cancelled at this time. It may already be confirmed or cancelled. If you need help with anything else, just let me know!"),
	{tagCancel, string(order.ReasonOrderNotFound)}:  text("You don't have an active order to cancel, what would you like to order now?"),
	{tagCancel, string(order.ReasonError)}:          text("Error cancelling your order"),

	{tagAddressSelection, statusOrderComplete}:               text("Your order is complete, Please confirm your order or modify the items if you need."),
	{tagAddressSelection, statusOrderPending}:                text("You have selected the location, what would you like to be delivered?"),
	{tagAddressSelection, string(order.ReasonNotModifiable)}: text("Your order cannot be modified at this time. It may already be confirmed or cancelled. If you need help with anything else, just let me know!"),
	{tagAddressSelection, string(order.ReasonError)}:         text("Error modifying your order"),

	{tagPayment, ""}:                               text("Thank you for ordering with us. Your order status will be updated shortly"),
	{tagPayment, string(order.ReasonNotConfirmed)}: text("Your order has not been confirmed yet, so I can't take a payment. Please confirm your order first."),
}

// compose is a pure lookup; unknown combinations fall back to the
// generic help message rather than erroring mid-conversation.
func compose(tag composeTag, status string, c composeContext) string {
	if fn, ok := composeTable[composeKey{tag, status}]; ok {
		return fn(c)
	}
	if fn, ok := composeTable[composeKey{tag, string(order.ReasonError)}]; ok {
		return fn(c)
	}
	return replyFallback
}

func text(s string) func(composeContext) string {
	return func(composeContext) string { return s }
}

func oppositeRole(role string) string {
	if role == "pickup" {
		return "dropoff"
	}
	return "pickup"
}

// slotVerb picks the verb the prompt uses for each side of the trip.
func slotVerb(role string) string {
	if role == "pickup" {
		return "get"
	}
	return "send"
}
