// README: Order service tests: slot invariant, lifecycle lock, item mutations.
package order

import (
	"context"
	"testing"

	"courier/internal/docstore"
)

func newTestService() *Service {
	return NewService(NewStore(docstore.NewMemory()))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// slot-driven flips
		{StatusIncomplete, StatusPending, true},
		{StatusPending, StatusIncomplete, true},
		// explicit user actions from non-terminal states
		{StatusIncomplete, StatusConfirmed, true},
		{StatusPending, StatusConfirmed, true},
		{StatusIncomplete, StatusCancelled, true},
		{StatusPending, StatusCancelled, true},
		// terminal states have no outgoing transitions
		{StatusConfirmed, StatusCancelled, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// A new order missing its dropoff address must come back incomplete.
func TestCreateIncompleteOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sum, err := svc.Create(ctx, CreateCommand{
		UserID:        "u1",
		PickupAddress: "A",
		Items:         []Item{{Item: "pizza", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sum.Status != StatusIncomplete || sum.HasAllRequired {
		t.Fatalf("expected incomplete order, got %+v", sum)
	}
	if sum.OrderNumber == "" {
		t.Fatal("expected an order number")
	}
}

func TestCreateCompleteOrderIsPending(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	sum := mustCreate(t, svc, CreateCommand{
		UserID:         "u1",
		PickupAddress:  "12 Main St",
		DropoffAddress: "48 Elm St",
		Items:          []Item{{Item: "pizza", Quantity: 1}},
	})
	if sum.Status != StatusPending || !sum.HasAllRequired {
		t.Fatalf("expected pending order, got %+v", sum)
	}

	o, err := svc.Get(ctx, sum.OrderID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if o.PackageStatus != PackageAwaitingConfirmation {
		t.Errorf("package status = %q", o.PackageStatus)
	}
}

// The place name rides along only while the matching address is unknown.
func TestCreateDropsPlaceWhenAddressKnown(t *testing.T) {
	svc := newTestService()
	sum := mustCreate(t, svc, CreateCommand{
		UserID:        "u1",
		PickupAddress: "12 Main St",
		PickupPlace:   "Pizza Pizza",
		DropoffPlace:  "Staples",
	})
	o, _ := svc.Get(context.Background(), sum.OrderID)
	if o.PickupPlace != "" {
		t.Errorf("pickup place should be dropped, got %q", o.PickupPlace)
	}
	if o.DropoffPlace != "Staples" {
		t.Errorf("dropoff place should be kept, got %q", o.DropoffPlace)
	}
}

func TestUpdateFieldsCompletesOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sum := mustCreate(t, svc, CreateCommand{
		UserID:        "u1",
		PickupAddress: "A",
		Items:         []Item{{Item: "pizza", Quantity: 1}},
	})

	addr := "48 Elm St"
	res := svc.UpdateFields(ctx, sum.OrderID, FieldUpdate{DropoffAddress: &addr})
	if !res.Success || !res.HasAllRequired {
		t.Fatalf("expected completing update, got %+v", res)
	}
	o, _ := svc.Get(ctx, sum.OrderID)
	if o.Status != StatusPending {
		t.Errorf("status = %s, want pending", o.Status)
	}
}

func TestUpdateFieldsMissingOrder(t *testing.T) {
	svc := newTestService()
	addr := "somewhere"
	res := svc.UpdateFields(context.Background(), "nope", FieldUpdate{PickupAddress: &addr})
	if res.Success || res.Reason != ReasonOrderNotFound {
		t.Fatalf("expected orderNotFound, got %+v", res)
	}
}

// Removing the only unit of the only item empties the list and reverts
// the order to incomplete.
func TestRemoveLastItemRevertsToIncomplete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sum := mustCreate(t, svc, CreateCommand{
		UserID:         "u1",
		PickupAddress:  "A",
		DropoffAddress: "B",
		Items:          []Item{{Item: "pizza", Quantity: 1}},
	})
	if sum.Status != StatusPending {
		t.Fatalf("precondition: expected pending, got %s", sum.Status)
	}

	res := svc.ApplyItemMutations(ctx, sum.OrderID, []Mutation{
		{Type: MutationRemove, Item: "pizza", Quantity: 1},
	})
	if !res.Success || res.HasAllRequired {
		t.Fatalf("expected successful emptying mutation, got %+v", res)
	}

	o, _ := svc.Get(ctx, sum.OrderID)
	if len(o.Items) != 0 {
		t.Fatalf("expected empty item list, got %+v", o.Items)
	}
	if o.Status != StatusIncomplete {
		t.Errorf("status = %s, want incomplete", o.Status)
	}
}

func TestItemMutations(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*Service, string) {
		t.Helper()
		svc := newTestService()
		sum := mustCreate(t, svc, CreateCommand{
			UserID:         "u1",
			PickupAddress:  "A",
			DropoffAddress: "B",
			Items:          []Item{{Item: "pizza", Quantity: 2}, {Item: "coke", Quantity: 1}},
		})
		return svc, sum.OrderID
	}

	t.Run("add existing increments quantity", func(t *testing.T) {
		svc, id := seed(t)
		res := svc.ApplyItemMutations(ctx, id, []Mutation{{Type: MutationAdd, Item: "Pizza", Quantity: 3}})
		if !res.Success {
			t.Fatalf("mutation failed: %+v", res)
		}
		o, _ := svc.Get(ctx, id)
		if o.Items[0].Quantity != 5 {
			t.Errorf("quantity = %d, want 5", o.Items[0].Quantity)
		}
	})

	t.Run("add new appends", func(t *testing.T) {
		svc, id := seed(t)
		res := svc.ApplyItemMutations(ctx, id, []Mutation{{Type: MutationAdd, Item: "garlic bread"}})
		if !res.Success {
			t.Fatalf("mutation failed: %+v", res)
		}
		o, _ := svc.Get(ctx, id)
		if len(o.Items) != 3 || o.Items[2].Item != "garlic bread" || o.Items[2].Quantity != 1 {
			t.Errorf("unexpected items: %+v", o.Items)
		}
	})

	t.Run("remove unknown fails", func(t *testing.T) {
		svc, id := seed(t)
		res := svc.ApplyItemMutations(ctx, id, []Mutation{{Type: MutationRemove, Item: "sushi"}})
		if res.Success || res.Reason != ReasonItemNotFound {
			t.Fatalf("expected itemNotFound, got %+v", res)
		}
	})

	t.Run("replace renames in place", func(t *testing.T) {
		svc, id := seed(t)
		res := svc.ApplyItemMutations(ctx, id, []Mutation{{Type: MutationReplace, Item: "coke", NewItem: "sprite"}})
		if !res.Success {
			t.Fatalf("mutation failed: %+v", res)
		}
		o, _ := svc.Get(ctx, id)
		if o.Items[1].Item != "sprite" || o.Items[1].Quantity != 1 {
			t.Errorf("unexpected items: %+v", o.Items)
		}
	})

	t.Run("replace into existing item fails", func(t *testing.T) {
		svc, id := seed(t)
		res := svc.ApplyItemMutations(ctx, id, []Mutation{{Type: MutationReplace, Item: "bread", NewItem: "pizza"}})
		if res.Success || res.Reason != ReasonItemAlreadyExists {
			t.Fatalf("expected itemAlreadyExists, got %+v", res)
		}
	})

	t.Run("failed batch writes nothing", func(t *testing.T) {
		svc, id := seed(t)
		res := svc.ApplyItemMutations(ctx, id, []Mutation{
			{Type: MutationAdd, Item: "garlic bread"},
			{Type: MutationRemove, Item: "sushi"},
		})
		if res.Success {
			t.Fatalf("expected batch failure, got %+v", res)
		}
		o, _ := svc.Get(ctx, id)
		if len(o.Items) != 2 {
			t.Errorf("failed batch must not persist partial changes: %+v", o.Items)
		}
	})

	t.Run("batch applies in order", func(t *testing.T) {
		svc, id := seed(t)
		res := svc.ApplyItemMutations(ctx, id, []Mutation{
			{Type: MutationAdd, Item: "garlic bread"},
			{Type: MutationRemove, Item: "coke"},
			{Type: MutationAdd, Item: "pizza", Quantity: 1},
		})
		if !res.Success {
			t.Fatalf("batch failed: %+v", res)
		}
		o, _ := svc.Get(ctx, id)
		if len(o.Items) != 2 || o.Items[0].Quantity != 3 || o.Items[1].Item != "garlic bread" {
			t.Errorf("unexpected items after batch: %+v", o.Items)
		}
	})
}

// No stored item may sit at quantity zero; removal deletes the entry.
func TestQuantityNeverZero(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sum := mustCreate(t, svc, CreateCommand{
		UserID:        "u1",
		PickupAddress: "A",
		Items:         []Item{{Item: "coke", Quantity: 2}},
	})

	res := svc.ApplyItemMutations(ctx, sum.OrderID, []Mutation{{Type: MutationRemove, Item: "coke", Quantity: 5}})
	if !res.Success {
		t.Fatalf("mutation failed: %+v", res)
	}
	o, _ := svc.Get(ctx, sum.OrderID)
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			t.Fatalf("stored item with non-positive quantity: %+v", it)
		}
	}
	if len(o.Items) != 0 {
		t.Fatalf("over-removal should delete the entry, got %+v", o.Items)
	}
}

func TestCancelConfirmedOrderRefused(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sum := mustCreate(t, svc, CreateCommand{
		UserID:         "u1",
		PickupAddress:  "A",
		DropoffAddress: "B",
		Items:          []Item{{Item: "pizza", Quantity: 1}},
	})

	if res := svc.UpdateStatus(ctx, sum.OrderID, StatusConfirmed); !res.Success {
		t.Fatalf("confirm failed: %+v", res)
	}

	res := svc.UpdateStatus(ctx, sum.OrderID, StatusCancelled)
	if res.Success || res.Reason != ReasonNotCancellable {
		t.Fatalf("expected notCancellable, got %+v", res)
	}
	o, _ := svc.Get(ctx, sum.OrderID)
	if o.Status != StatusConfirmed {
		t.Errorf("refused transition must not change the record, status = %s", o.Status)
	}
}

func TestDoubleConfirmRefused(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sum := mustCreate(t, svc, CreateCommand{UserID: "u1", PickupAddress: "A"})

	if res := svc.UpdateStatus(ctx, sum.OrderID, StatusConfirmed); !res.Success {
		t.Fatalf("confirm failed: %+v", res)
	}
	res := svc.UpdateStatus(ctx, sum.OrderID, StatusConfirmed)
	if res.Success || res.Reason != ReasonNotConfirmable {
		t.Fatalf("expected notConfirmable, got %+v", res)
	}
}

func TestPaymentRequiresConfirmed(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sum := mustCreate(t, svc, CreateCommand{UserID: "u1", PickupAddress: "A"})

	res := svc.UpdatePaymentStatus(ctx, sum.OrderID, PaymentSuccess, "Venmo")
	if res.Success || res.Reason != ReasonNotConfirmed {
		t.Fatalf("expected notConfirmed, got %+v", res)
	}

	svc.UpdateStatus(ctx, sum.OrderID, StatusConfirmed)
	res = svc.UpdatePaymentStatus(ctx, sum.OrderID, PaymentSuccess, "Venmo")
	if !res.Success {
		t.Fatalf("payment on confirmed order failed: %+v", res)
	}
	o, _ := svc.Get(ctx, sum.OrderID)
	if o.PaymentStatus != PaymentSuccess || o.PaymentType != "Venmo" {
		t.Errorf("payment fields not persisted: %+v", o)
	}
}

// Once cancelled, or confirmed and paid, every mutating call is refused.
func TestTerminalLock(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cancelled := mustCreate(t, svc, CreateCommand{UserID: "u1", PickupAddress: "A"})
	svc.UpdateStatus(ctx, cancelled.OrderID, StatusCancelled)

	paid := mustCreate(t, svc, CreateCommand{
		UserID:         "u1",
		PickupAddress:  "A",
		DropoffAddress: "B",
		Items:          []Item{{Item: "pizza", Quantity: 1}},
	})
	svc.UpdateStatus(ctx, paid.OrderID, StatusConfirmed)
	svc.UpdatePaymentStatus(ctx, paid.OrderID, PaymentSuccess, "Paypal")

	addr := "C"
	for _, id := range []string{cancelled.OrderID, paid.OrderID} {
		if res := svc.UpdateFields(ctx, id, FieldUpdate{PickupAddress: &addr}); res.Success || res.Reason != ReasonNotModifiable {
			t.Errorf("updateFields on terminal order %s: %+v", id, res)
		}
		if res := svc.ApplyItemMutations(ctx, id, []Mutation{{Type: MutationAdd, Item: "x"}}); res.Success || res.Reason != ReasonNotModifiable {
			t.Errorf("item mutation on terminal order %s: %+v", id, res)
		}
		if svc.IsActive(ctx, id) {
			t.Errorf("terminal order %s still reported active", id)
		}
	}
}

func TestIsActive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if svc.IsActive(ctx, "") || svc.IsActive(ctx, "missing") {
		t.Fatal("blank or missing ids must not be active")
	}

	sum := mustCreate(t, svc, CreateCommand{UserID: "u1", PickupAddress: "A"})
	if !svc.IsActive(ctx, sum.OrderID) {
		t.Fatal("incomplete order should be active")
	}

	// Confirmed but unpaid is still active for the conversation.
	svc.UpdateStatus(ctx, sum.OrderID, StatusConfirmed)
	if !svc.IsActive(ctx, sum.OrderID) {
		t.Fatal("confirmed-unpaid order should be active")
	}
}

func TestPrecheckIdempotent(t *testing.T) {
	o := &Order{Status: StatusConfirmed, PaymentStatus: PaymentSuccess}
	first := PrecheckModifiable(o)
	second := PrecheckModifiable(o)
	if first != second || first != ReasonNotModifiable {
		t.Fatalf("precheck not stable: %q then %q", first, second)
	}
	if PrecheckModifiable(nil) != ReasonOrderNotFound {
		t.Fatal("nil order should be orderNotFound")
	}
}

func TestItemExists(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	sum := mustCreate(t, svc, CreateCommand{
		UserID: "u1",
		Items:  []Item{{Item: "Peparoni Medium Pizza", Quantity: 1}},
	})

	ok, err := svc.ItemExists(ctx, sum.OrderID, "peparoni medium pizza")
	if err != nil || !ok {
		t.Fatalf("case-insensitive lookup failed: %v %v", ok, err)
	}
	ok, _ = svc.ItemExists(ctx, sum.OrderID, "sushi")
	if ok {
		t.Fatal("unexpected match for absent item")
	}
}

func mustCreate(t *testing.T, svc *Service, cmd CreateCommand) *CreateSummary {
	t.Helper()
	sum, err := svc.Create(context.Background(), cmd)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return sum
}
