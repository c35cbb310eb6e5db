package cart

import (
	"context"
	"testing"
	"time"

	"calyx/models"
)

func lines(entries ...models.CartLine) map[string]models.CartLine {
	out := map[string]models.CartLine{}
	for _, l := range entries {
		out[l.ProductID] = l
	}
	return out
}

func totalsEngine(discounts map[string]*models.Discount) *Engine {
	e := testEngine(catalogWith(), &fakeStore{}, nil)
	e.discounts = &fakeDiscounts{byCode: discounts}
	return e
}

func TestTotalsSumsLines(t *testing.T) {
	e := totalsEngine(nil)
	state := models.CartState{Cart: lines(
		models.CartLine{ProductID: "p1", Quantity: 2, TotalItemPrice: 40},
		models.CartLine{ProductID: "p2", Quantity: 3, TotalItemPrice: 30},
	)}

	state, dropped, err := e.Totals(context.Background(), state)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if dropped {
		t.Fatal("no discount was applied, nothing to drop")
	}
	if state.TotalCartItems != 2 || state.TotalCartProducts != 5 {
		t.Fatalf("expected 2 lines / 5 products, got %d / %d", state.TotalCartItems, state.TotalCartProducts)
	}
	// 70 net plus 10 flat shipping.
	if state.TotalCartShipping != 10 || state.TotalCartAmount != 80 {
		t.Fatalf("expected shipping 10 total 80, got %v / %v", state.TotalCartShipping, state.TotalCartAmount)
	}
}

func TestTotalsFreeShippingOverThreshold(t *testing.T) {
	e := totalsEngine(nil)
	state := models.CartState{Cart: lines(
		models.CartLine{ProductID: "p1", Quantity: 1, TotalItemPrice: 150},
	)}

	state, _, err := e.Totals(context.Background(), state)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if state.TotalCartShipping != 0 || state.TotalCartAmount != 150 {
		t.Fatalf("expected free shipping, got shipping %v total %v", state.TotalCartShipping, state.TotalCartAmount)
	}
}

func TestTotalsAppliesPercentDiscount(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e := totalsEngine(map[string]*models.Discount{
		"TEN": {Code: "TEN", Type: models.DiscountTypePercent, Value: 10, Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
	})
	state := models.CartState{
		Cart:         lines(models.CartLine{ProductID: "p1", Quantity: 1, TotalItemPrice: 50}),
		DiscountCode: "TEN",
	}

	state, dropped, err := e.Totals(context.Background(), state)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if dropped {
		t.Fatal("active discount should not be dropped")
	}
	// 45 net plus 10 shipping.
	if state.TotalCartAmount != 55 {
		t.Fatalf("expected total 55, got %v", state.TotalCartAmount)
	}
}

func TestTotalsAmountDiscountFloorsAtZero(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e := totalsEngine(map[string]*models.Discount{
		"BIG": {Code: "BIG", Type: models.DiscountTypeAmount, Value: 100, Start: now.Add(-time.Hour), End: now.Add(time.Hour)},
	})
	state := models.CartState{
		Cart:         lines(models.CartLine{ProductID: "p1", Quantity: 1, TotalItemPrice: 30}),
		DiscountCode: "BIG",
	}

	state, _, err := e.Totals(context.Background(), state)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	// Net floors at zero and shipping is free on a zero amount.
	if state.TotalCartAmount != 0 || state.TotalCartShipping != 0 {
		t.Fatalf("expected zero total, got %v shipping %v", state.TotalCartAmount, state.TotalCartShipping)
	}
}

func TestTotalsDropsExpiredDiscount(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	e := totalsEngine(map[string]*models.Discount{
		"OLD": {Code: "OLD", Type: models.DiscountTypePercent, Value: 50, Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour)},
	})
	state := models.CartState{
		Cart:         lines(models.CartLine{ProductID: "p1", Quantity: 1, TotalItemPrice: 50}),
		DiscountCode: "OLD",
	}

	state, dropped, err := e.Totals(context.Background(), state)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if !dropped {
		t.Fatal("expired discount should be reported as dropped")
	}
	if state.DiscountCode != "" {
		t.Fatalf("expected code cleared, got %q", state.DiscountCode)
	}
	// Full price restored: 50 plus 10 shipping.
	if state.TotalCartAmount != 60 {
		t.Fatalf("expected total 60, got %v", state.TotalCartAmount)
	}
}

func TestTotalsDropsUnknownDiscount(t *testing.T) {
	e := totalsEngine(nil)
	state := models.CartState{
		Cart:         lines(models.CartLine{ProductID: "p1", Quantity: 1, TotalItemPrice: 50}),
		DiscountCode: "GONE",
	}

	state, dropped, err := e.Totals(context.Background(), state)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if !dropped || state.DiscountCode != "" {
		t.Fatalf("expected deleted code dropped, got dropped=%v code=%q", dropped, state.DiscountCode)
	}
}
