// README: Dialogue orchestrator: one inbound turn in, one composed response out.
package dialogue

import (
	"context"
	"errors"
	"log"

	"courier/internal/ai"
	"courier/internal/maps"
	"courier/internal/modules/chat"
	"courier/internal/modules/order"
	"courier/internal/modules/usage"
)

// Deps bundles the collaborators a dialogue service runs against.
type Deps struct {
	Extractor ai.Extractor
	Places    PlaceSearcher
	Orders    *order.Service
	Chats     *chat.Service

	// Quota may be nil when language-understanding calls are unmetered.
	Quota QuotaConsumer

	// DefaultLocation anchors place searches when the client sends no
	// user location.
	DefaultLocation string
}

type Service struct {
	extractor ai.Extractor
	places    PlaceSearcher
	orders    *order.Service
	chats     *chat.Service
	quota     QuotaConsumer

	defaultLocation string
}

func NewService(deps Deps) *Service {
	return &Service{
		extractor:       deps.Extractor,
		places:          deps.Places,
		orders:          deps.Orders,
		chats:           deps.Chats,
		quota:           deps.Quota,
		defaultLocation: deps.DefaultLocation,
	}
}

// HandleTurn processes one user turn end to end: dispatch by message
// type, run the order logic, persist the conversation pair, and return
// the composed response. Engine failures never escape as errors; they
// come back as conversational replies.
func (s *Service) HandleTurn(ctx context.Context, req TurnRequest) (*Response, error) {
	location := req.UserLocation
	if location == "" {
		location = s.defaultLocation
	}

	sessionID := req.SessionID
	if sessionID == "" {
		active, err := s.chats.ActiveSession(ctx, req.UserID)
		if err != nil {
			log.Printf("active session lookup failed for user %s: %v", req.UserID, err)
		} else {
			sessionID = active
		}
	}

	var resp *Response
	var topic string
	if req.MessageType == MessageTypeSelection {
		resp = s.handleSelection(ctx, req, location)
	} else {
		resp, topic = s.handleText(ctx, req, sessionID, location)
	}

	storedID, err := s.chats.StoreConversation(ctx, req.UserID, sessionID, req.Message, req.MessageType, resp.Reply, topic)
	if err != nil {
		log.Printf("storing conversation for user %s: %v", req.UserID, err)
		resp.SessionID = sessionID
	} else {
		resp.SessionID = storedID
	}
	return resp, nil
}

func (s *Service) handleText(ctx context.Context, req TurnRequest, sessionID, location string) (*Response, string) {
	hasActiveOrder := req.OrderID != "" && s.orders.IsActive(ctx, req.OrderID)

	if s.quota != nil {
		if err := s.quota.Consume(ctx, req.UserID); err != nil {
			if errors.Is(err, usage.ErrQuotaExhausted) {
				return &Response{Reply: replyQuotaExhausted, OrderID: req.OrderID}, ""
			}
			// Metering infrastructure trouble must not block the user.
			log.Printf("quota check failed for user %s: %v", req.UserID, err)
		}
	}

	if hasActiveOrder {
		extraction, err := s.extractor.ExtractActiveOrder(ctx, req.Message)
		if err != nil {
			log.Printf("active-order extraction failed: %v", err)
			return &Response{Reply: replyGenericFailure, OrderID: req.OrderID}, ""
		}
		return s.handleActiveOrder(ctx, extraction, req.OrderID, location), ""
	}

	extraction, err := s.extractor.ExtractNewOrder(ctx, req.Message)
	if err != nil {
		log.Printf("new-order extraction failed: %v", err)
		return &Response{Reply: replyGenericFailure}, ""
	}
	return s.handleNewOrder(ctx, extraction, req.UserID, sessionID, location), extraction.Topic
}

// handleNewOrder dispatches a turn from a user with no active order.
func (s *Service) handleNewOrder(ctx context.Context, ex *ai.ExtractionResult, userID, sessionID, location string) *Response {
	switch ex.Intent {
	case ai.IntentPickup, ai.IntentDropoff:
		return s.handleSlotIntent(ctx, ex, userID, sessionID, location)

	case ai.IntentSuggestion, ai.IntentSuggestPickup, ai.IntentSuggestDropoff:
		item := firstItemName(ex.Items)
		reply := compose(tagSuggestion, "", composeContext{item: item})
		if item == "" {
			return &Response{Reply: reply}
		}
		places, err := s.places.Search(ctx, item, location, maps.SearchTypeItem)
		if err != nil {
			log.Printf("item search failed for %q: %v", item, err)
			return &Response{Reply: replyGenericFailure}
		}
		return &Response{
			Reply:          reply,
			Suggestions:    suggestionsFromPlaces(places),
			SuggestionType: SuggestionType(ex.Intent),
		}

	case ai.IntentInfo, ai.IntentGreetings:
		return &Response{Reply: ex.Notes}

	default:
		return &Response{Reply: compose(tagOutOfScope, "", composeContext{})}
	}
}

// handleSlotIntent resolves the side the user named, creates the order
// record, and asks about whatever the resolver could not settle. The
// opposite side of the trip defaults to the user's own location.
func (s *Service) handleSlotIntent(ctx context.Context, ex *ai.ExtractionResult, userID, sessionID, location string) *Response {
	role := SuggestionPickup
	placeName := ex.PickupPlace
	address := ex.PickupAddress
	if ex.Intent == ai.IntentDropoff {
		role = SuggestionDropoff
		placeName = ex.DropoffPlace
		address = ex.DropoffAddress
	}

	// A provider outage means we cannot tell whether the place exists;
	// no order record is written for a turn we could not resolve.
	res, err := s.resolvePlace(ctx, role, placeName, address, location)
	if err != nil {
		log.Printf("resolving %s slot: %v", role, err)
		return &Response{Reply: replyGenericFailure}
	}
	reply := compose(tagSlot, string(res.Status), composeContext{
		role:  string(role),
		place: placeName,
		item:  firstItemName(ex.Items),
	})

	cmd := order.CreateCommand{
		UserID:        userID,
		ChatSessionID: sessionID,
		Intent:        string(ex.Intent),
		Items:         itemsFromSlots(ex.Items),
		Notes:         ex.Notes,
	}
	if ex.Intent == ai.IntentPickup {
		cmd.PickupAddress = ex.PickupAddress
		cmd.PickupPlace = ex.PickupPlace
		cmd.DropoffAddress = location
		cmd.DropoffPlace = ex.DropoffPlace
	} else {
		cmd.PickupAddress = location
		cmd.PickupPlace = ex.PickupPlace
		cmd.DropoffAddress = ex.DropoffAddress
		cmd.DropoffPlace = ex.DropoffPlace
	}

	sum, err := s.orders.Create(ctx, cmd)
	if err != nil {
		log.Printf("creating order for user %s: %v", userID, err)
		return &Response{Reply: replyGenericFailure}
	}

	return &Response{
		Reply:          reply,
		Suggestions:    res.Suggestions,
		SuggestionType: res.SuggestionType,
		OrderID:        sum.OrderID,
	}
}

// handleActiveOrder dispatches a turn from a user with an order in
// flight. The order id echoes back unchanged except where the action
// ends the order's role in the conversation.
func (s *Service) handleActiveOrder(ctx context.Context, ex *ai.ExtractionResult, orderID, location string) *Response {
	switch ex.Action {
	case ai.ActionModify:
		return s.handleModify(ctx, ex, orderID, location)

	case ai.ActionConfirm:
		return s.confirmOrder(ctx, orderID)

	case ai.ActionCancel:
		res := s.orders.UpdateStatus(ctx, orderID, order.StatusCancelled)
		if !res.Success {
			return &Response{Reply: compose(tagCancel, string(res.Reason), composeContext{}), OrderID: orderID}
		}
		// A cancelled order no longer anchors the conversation.
		return &Response{Reply: compose(tagCancel, "", composeContext{})}

	case ai.ActionInfo:
		return &Response{Reply: ex.Notes, OrderID: orderID}

	case ai.ActionNewOrder:
		return &Response{Reply: compose(tagNewOrder, "", composeContext{})}

	default:
		return &Response{Reply: compose(tagOutOfScope, "", composeContext{}), OrderID: orderID}
	}
}

func (s *Service) handleModify(ctx context.Context, ex *ai.ExtractionResult, orderID, location string) *Response {
	var res order.Result
	if len(ex.Mutations) > 0 {
		res = s.orders.ApplyItemMutations(ctx, orderID, mutationsFromExtraction(ex.Mutations))
	} else {
		var upd order.FieldUpdate
		if ex.PickupAddress != "" {
			upd.PickupAddress = &ex.PickupAddress
		}
		if ex.DropoffAddress != "" {
			upd.DropoffAddress = &ex.DropoffAddress
		}
		res = s.orders.UpdateFields(ctx, orderID, upd)
	}

	if !res.Success {
		return &Response{Reply: compose(tagModify, string(res.Reason), composeContext{}), OrderID: orderID}
	}

	suggestions, suggestionType := s.suggestionsForOrder(ctx, orderID, location)
	return &Response{
		Reply:          compose(tagModify, "", composeContext{}),
		Suggestions:    suggestions,
		SuggestionType: suggestionType,
		OrderID:        orderID,
	}
}

func (s *Service) confirmOrder(ctx context.Context, orderID string) *Response {
	res := s.orders.UpdateStatus(ctx, orderID, order.StatusConfirmed)
	if !res.Success {
		return &Response{Reply: compose(tagConfirm, string(res.Reason), composeContext{}), OrderID: orderID}
	}
	return &Response{
		Reply:          compose(tagConfirm, "", composeContext{orderNo: res.OrderNumber}),
		Suggestions:    paymentTypeSuggestions(),
		SuggestionType: SuggestionPaymentTypes,
		OrderID:        orderID,
	}
}

// handleSelection routes a tapped suggestion chip by the list it came
// from. Selections bypass extraction entirely.
func (s *Service) handleSelection(ctx context.Context, req TurnRequest, location string) *Response {
	switch req.SuggestionType {
	case SuggestionOrderConfirmation:
		switch req.Message {
		case LabelConfirmOrder:
			return s.confirmOrder(ctx, req.OrderID)
		case LabelCancelOrder:
			res := s.orders.UpdateStatus(ctx, req.OrderID, order.StatusCancelled)
			if !res.Success {
				return &Response{Reply: compose(tagCancel, string(res.Reason), composeContext{}), OrderID: req.OrderID}
			}
			return &Response{Reply: compose(tagCancel, "", composeContext{})}
		default:
			return &Response{Reply: replyNotUnderstood, OrderID: req.OrderID}
		}

	case SuggestionPaymentTypes:
		res := s.orders.UpdatePaymentStatus(ctx, req.OrderID, order.PaymentSuccess, req.Message)
		if !res.Success {
			return &Response{Reply: compose(tagPayment, string(res.Reason), composeContext{}), OrderID: req.OrderID}
		}
		return &Response{Reply: compose(tagPayment, "", composeContext{}), OrderID: req.OrderID}

	case SuggestionPickup, SuggestionDropoff, SuggestionSuggestPickup, SuggestionSuggestDropoff:
		return s.handleAddressSelection(ctx, req, location)

	default:
		return &Response{Reply: replyNotUnderstood, OrderID: req.OrderID}
	}
}

// handleAddressSelection writes the chosen address onto the matching
// side of the order and re-derives what to ask about next.
func (s *Service) handleAddressSelection(ctx context.Context, req TurnRequest, location string) *Response {
	var upd order.FieldUpdate
	address := req.Message
	switch req.SuggestionType {
	case SuggestionPickup, SuggestionSuggestPickup:
		upd.PickupAddress = &address
	default:
		upd.DropoffAddress = &address
	}

	res := s.orders.UpdateFields(ctx, req.OrderID, upd)
	if !res.Success {
		return &Response{Reply: compose(tagAddressSelection, string(res.Reason), composeContext{}), OrderID: req.OrderID}
	}

	status := statusOrderPending
	if res.HasAllRequired {
		status = statusOrderComplete
	}
	suggestions, suggestionType := s.suggestionsForOrder(ctx, req.OrderID, location)
	return &Response{
		Reply:          compose(tagAddressSelection, status, composeContext{}),
		Suggestions:    suggestions,
		SuggestionType: suggestionType,
		OrderID:        req.OrderID,
	}
}

// suggestionsForOrder inspects what the order still needs, in fixed
// priority order, and produces the chips that move it forward: the
// confirm/cancel pair once everything required is present, otherwise
// place candidates for the first missing address that has a place name
// to search with. A missing item list yields no chips; the reply text
// carries that prompt.
func (s *Service) suggestionsForOrder(ctx context.Context, orderID, location string) ([]Suggestion, SuggestionType) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		log.Printf("loading order %s for suggestions: %v", orderID, err)
		return nil, ""
	}

	if o.HasAllRequired() {
		return confirmationPair(), SuggestionOrderConfirmation
	}

	if o.PickupAddress == "" {
		res, err := s.resolvePlace(ctx, SuggestionSuggestPickup, o.PickupPlace, "", location)
		if err != nil {
			log.Printf("pickup suggestions for order %s: %v", orderID, err)
			return nil, ""
		}
		if res.Status == ResolutionSuggested {
			return res.Suggestions, SuggestionSuggestPickup
		}
		return nil, ""
	}
	if o.DropoffAddress == "" {
		res, err := s.resolvePlace(ctx, SuggestionSuggestDropoff, o.DropoffPlace, "", location)
		if err != nil {
			log.Printf("dropoff suggestions for order %s: %v", orderID, err)
			return nil, ""
		}
		if res.Status == ResolutionSuggested {
			return res.Suggestions, SuggestionSuggestDropoff
		}
		return nil, ""
	}
	return nil, ""
}

func firstItemName(items []ai.ItemSlot) string {
	if len(items) == 0 {
		return ""
	}
	return items[0].Item
}

func itemsFromSlots(slots []ai.ItemSlot) []order.Item {
	out := make([]order.Item, 0, len(slots))
	for _, s := range slots {
		out = append(out, order.Item{Item: s.Item, Quantity: s.Quantity})
	}
	return out
}

func mutationsFromExtraction(muts []ai.ItemMutation) []order.Mutation {
	out := make([]order.Mutation, 0, len(muts))
	for _, m := range muts {
		out = append(out, order.Mutation{
			Type:     order.MutationType(m.Type),
			Item:     m.Item,
			Quantity: m.Quantity,
			NewItem:  m.NewItem,
		})
	}
	return out
}
