package checkout

import (
	"testing"

	"calyx/models"
)

func TestSnapshotCopiesLinesByValue(t *testing.T) {
	state := models.CartState{
		Cart: map[string]models.CartLine{
			"p1": {ProductID: "p1", Title: "Widget", Quantity: 2, UnitPrice: 10, TotalItemPrice: 20},
		},
		TotalCartAmount:   30,
		TotalCartShipping: 10,
		TotalCartItems:    1,
		TotalCartProducts: 2,
	}

	order := snapshot(state, orderBody{}, "Instore", models.OrderStatusPaid, "paid in full")

	// Mutating the cart afterwards must not reach the order document.
	line := state.Cart["p1"]
	line.Quantity = 99
	state.Cart["p1"] = line
	delete(state.Cart, "p1")

	got := order.OrderProducts["p1"]
	if got.Quantity != 2 || got.TotalItemPrice != 20 {
		t.Fatalf("snapshot shares state with the cart: %+v", got)
	}
	if order.OrderTotal != 30 || order.OrderShipping != 10 {
		t.Fatalf("expected totals 30/10, got %v/%v", order.OrderTotal, order.OrderShipping)
	}
	if order.OrderItemCount != 1 || order.OrderProductCount != 2 {
		t.Fatalf("expected counts 1/2, got %d/%d", order.OrderItemCount, order.OrderProductCount)
	}
	if order.OrderID == "" || order.OrderPaymentID == "" {
		t.Fatal("expected generated order and payment ids")
	}
	if order.OrderStatus != models.OrderStatusPaid || order.OrderPaymentGateway != "Instore" {
		t.Fatalf("unexpected status/gateway: %s/%s", order.OrderStatus, order.OrderPaymentGateway)
	}
	if order.ProductStockUpdated {
		t.Fatal("new orders must not be marked stock-updated")
	}
}

func TestSnapshotBodyOverridesSession(t *testing.T) {
	state := models.CartState{
		Cart: map[string]models.CartLine{"p1": {ProductID: "p1", Quantity: 1}},
		Customer: models.CustomerSession{
			Present:    true,
			CustomerID: "c1",
			Email:      "session@example.com",
			FirstName:  "Session",
			LastName:   "Person",
			Country:    "Australia",
		},
	}

	order := snapshot(state, orderBody{Email: "body@example.com", FirstName: "Body"}, "WireTransfer", models.OrderStatusPending, "")

	if order.OrderEmail != "body@example.com" {
		t.Fatalf("body email should win, got %s", order.OrderEmail)
	}
	if order.OrderFirstname != "Body" {
		t.Fatalf("body first name should win, got %s", order.OrderFirstname)
	}
	if order.OrderLastname != "Person" || order.OrderCountry != "Australia" {
		t.Fatalf("blank body fields should fall back to the session, got %s / %s", order.OrderLastname, order.OrderCountry)
	}
	if order.OrderCustomer != "c1" {
		t.Fatalf("expected session customer id, got %s", order.OrderCustomer)
	}
}
