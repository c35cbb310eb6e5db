package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"calyx/config"
	"calyx/faults"
	"calyx/models"
)

func intPtr(n int) *int { return &n }

type fakeCatalog struct {
	products map[string]*models.Product
	variants map[string]*models.Variant
}

func (f *fakeCatalog) Product(_ context.Context, id string) (*models.Product, error) {
	return f.products[id], nil
}

func (f *fakeCatalog) Variant(_ context.Context, variantID, productID string) (*models.Variant, error) {
	v := f.variants[variantID]
	if v == nil || v.Product != productID {
		return nil, nil
	}
	return v, nil
}

type fakeStore struct {
	saved   map[string]models.CartLine
	deleted bool
}

func (f *fakeStore) Save(_ context.Context, _ string, cart map[string]models.CartLine) error {
	f.saved = cart
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _ string) error {
	f.deleted = true
	return nil
}

type fakeDiscounts struct {
	byCode map[string]*models.Discount
}

func (f *fakeDiscounts) ByCode(_ context.Context, code string) (*models.Discount, error) {
	return f.byCode[code], nil
}

func testConfig() *config.Config {
	return &config.Config{
		MaxQuantity:      10,
		TrackStock:       true,
		DiscountsEnabled: true,
		ShippingAmount:   10,
		FreeShippingOver: 100,
		DomesticCountry:  "Australia",
	}
}

func testEngine(catalog *fakeCatalog, store *fakeStore, held map[string]int) *Engine {
	e := NewEngine(testConfig(), catalog, store, &fakeDiscounts{byCode: map[string]*models.Discount{}},
		func(context.Context, string) (map[string]int, error) { return held, nil },
		func(net float64, _ string) float64 {
			if net <= 0 || net >= 100 {
				return 0
			}
			return 10
		})
	e.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return e
}

func catalogWith(products ...*models.Product) *fakeCatalog {
	c := &fakeCatalog{products: map[string]*models.Product{}, variants: map[string]*models.Variant{}}
	for _, p := range products {
		c.products[p.ProductID] = p
	}
	return c
}

func simpleProduct(id string, price float64, stock *int) *models.Product {
	return &models.Product{
		ProductID:    id,
		ProductTitle: "Product " + id,
		ProductPrice: price,
		ProductStock: stock,
	}
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	store := &fakeStore{}
	e := testEngine(catalogWith(simpleProduct("p1", 25, nil)), store, nil)

	state, res, err := e.Add(context.Background(), "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := state.Cart["p1"].Quantity; got != 1 {
		t.Fatalf("expected quantity 1, got %d", got)
	}
	if res.CartID != "p1" {
		t.Fatalf("expected cartId p1, got %s", res.CartID)
	}
	if store.saved == nil {
		t.Fatal("expected cart to be persisted")
	}
}

func TestAddRejectsOverMaxQuantity(t *testing.T) {
	e := testEngine(catalogWith(simpleProduct("p1", 25, nil)), &fakeStore{}, nil)

	_, _, err := e.Add(context.Background(), "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 11})
	if !errors.Is(err, faults.ErrQuantityExceeded) {
		t.Fatalf("expected ErrQuantityExceeded, got %v", err)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	e := testEngine(catalogWith(), &fakeStore{}, nil)

	_, _, err := e.Add(context.Background(), "s1", models.CartState{}, AddCommand{ProductID: "nope", Quantity: 1})
	if !errors.Is(err, faults.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAddMergesExistingLine(t *testing.T) {
	e := testEngine(catalogWith(simpleProduct("p1", 10, nil)), &fakeStore{}, nil)
	ctx := context.Background()

	state, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 2})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	state, _, err = e.Add(ctx, "s1", state, AddCommand{ProductID: "p1", Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	line := state.Cart["p1"]
	if line.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", line.Quantity)
	}
	if line.TotalItemPrice != 50 {
		t.Fatalf("expected line total 50, got %v", line.TotalItemPrice)
	}
	if state.TotalCartItems != 1 || state.TotalCartProducts != 5 {
		t.Fatalf("expected 1 line / 5 products, got %d / %d", state.TotalCartItems, state.TotalCartProducts)
	}
}

func TestAddInsufficientStock(t *testing.T) {
	e := testEngine(catalogWith(simpleProduct("p1", 10, intPtr(5))), &fakeStore{}, nil)
	ctx := context.Background()

	_, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 6})
	if !errors.Is(err, faults.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for 6 of 5, got %v", err)
	}

	state, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 5})
	if err != nil {
		t.Fatalf("expected 5 of 5 to succeed, got %v", err)
	}
	if state.Cart["p1"].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", state.Cart["p1"].Quantity)
	}
}

func TestAddAccountsForHeldStock(t *testing.T) {
	held := map[string]int{"p1": 3}
	e := testEngine(catalogWith(simpleProduct("p1", 10, intPtr(5))), &fakeStore{}, held)
	ctx := context.Background()

	_, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 3})
	if !errors.Is(err, faults.ErrInsufficientStock) {
		t.Fatalf("expected held stock to reject 3 of net 2, got %v", err)
	}

	if _, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 2}); err != nil {
		t.Fatalf("expected 2 of net 2 to succeed, got %v", err)
	}
}

func TestAddSkipsStockWhenNotTracked(t *testing.T) {
	p := simpleProduct("p1", 10, intPtr(1))
	p.ProductStockDisable = true
	e := testEngine(catalogWith(p), &fakeStore{}, nil)

	if _, _, err := e.Add(context.Background(), "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 5}); err != nil {
		t.Fatalf("expected stock-disabled product to bypass checks, got %v", err)
	}
}

func TestAddVariantOverridesPriceAndStock(t *testing.T) {
	catalog := catalogWith(simpleProduct("p1", 10, intPtr(100)))
	catalog.variants["v1"] = &models.Variant{
		VariantID: "v1",
		Product:   "p1",
		Title:     "Large",
		Price:     15,
		Stock:     intPtr(2),
	}
	e := testEngine(catalog, &fakeStore{}, nil)
	ctx := context.Background()

	_, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", VariantID: "v1", Quantity: 3})
	if !errors.Is(err, faults.ErrInsufficientStock) {
		t.Fatalf("expected variant stock to apply, got %v", err)
	}

	state, res, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", VariantID: "v1", Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CartID != "v1" {
		t.Fatalf("expected line keyed by variant id, got %s", res.CartID)
	}
	line := state.Cart["v1"]
	if line.UnitPrice != 15 || line.TotalItemPrice != 30 {
		t.Fatalf("expected variant price 15/30, got %v/%v", line.UnitPrice, line.TotalItemPrice)
	}
	if line.VariantTitle != "Large" {
		t.Fatalf("expected variant title, got %q", line.VariantTitle)
	}
}

func TestAddUnknownVariant(t *testing.T) {
	e := testEngine(catalogWith(simpleProduct("p1", 10, nil)), &fakeStore{}, nil)

	_, _, err := e.Add(context.Background(), "s1", models.CartState{}, AddCommand{ProductID: "p1", VariantID: "v9", Quantity: 1})
	if !errors.Is(err, faults.ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestSubscriptionExclusivity(t *testing.T) {
	sub := simpleProduct("sub", 20, nil)
	sub.ProductSubscription = true
	plain := simpleProduct("plain", 10, nil)
	e := testEngine(catalogWith(sub, plain), &fakeStore{}, nil)
	ctx := context.Background()

	// Subscription into a non-empty cart.
	state, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "plain", Quantity: 1})
	if err != nil {
		t.Fatalf("add plain: %v", err)
	}
	if _, _, err := e.Add(ctx, "s1", state, AddCommand{ProductID: "sub", Quantity: 1}); !errors.Is(err, faults.ErrSubscriptionConflict) {
		t.Fatalf("expected conflict adding subscription to non-empty cart, got %v", err)
	}

	// Anything into a cart holding a subscription.
	state, _, err = e.Add(ctx, "s2", models.CartState{}, AddCommand{ProductID: "sub", Quantity: 1})
	if err != nil {
		t.Fatalf("add subscription: %v", err)
	}
	if !state.CartSubscription {
		t.Fatal("expected CartSubscription to be set")
	}
	if _, _, err := e.Add(ctx, "s2", state, AddCommand{ProductID: "plain", Quantity: 1}); !errors.Is(err, faults.ErrSubscriptionConflict) {
		t.Fatalf("expected conflict adding into subscription cart, got %v", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	e := testEngine(catalogWith(simpleProduct("p1", 10, intPtr(5))), &fakeStore{}, nil)
	ctx := context.Background()

	state, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	state, err = e.Update(ctx, "s1", state, "p1", 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if state.Cart["p1"].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", state.Cart["p1"].Quantity)
	}
	if state.Cart["p1"].TotalItemPrice != 40 {
		t.Fatalf("expected line total 40, got %v", state.Cart["p1"].TotalItemPrice)
	}

	// The requested quantity replaces the held amount outright.
	if _, err := e.Update(ctx, "s1", state, "p1", 6); !errors.Is(err, faults.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock updating to 6 of 5, got %v", err)
	}
}

func TestUpdateZeroRemovesLine(t *testing.T) {
	e := testEngine(catalogWith(simpleProduct("p1", 10, nil)), &fakeStore{}, nil)
	ctx := context.Background()

	state, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	state, err = e.Update(ctx, "s1", state, "p1", 0)
	if !errors.Is(err, faults.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound after zero-quantity update, got %v", err)
	}
	if state.HasCart() {
		t.Fatal("expected cart cleared after zero-quantity removal of last line")
	}
	if state.TotalCartAmount != 0 || state.TotalCartItems != 0 {
		t.Fatalf("expected zero totals, got amount %v items %d", state.TotalCartAmount, state.TotalCartItems)
	}
}

func TestUpdateMissingLine(t *testing.T) {
	e := testEngine(catalogWith(simpleProduct("p1", 10, nil)), &fakeStore{}, nil)
	ctx := context.Background()

	state, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := e.Update(ctx, "s1", state, "ghost", 3); !errors.Is(err, faults.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
	if _, err := e.Update(ctx, "s1", models.CartState{}, "p1", 3); !errors.Is(err, faults.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound on empty state, got %v", err)
	}
}

func TestRemoveLastLineEmptiesCart(t *testing.T) {
	store := &fakeStore{}
	e := testEngine(catalogWith(simpleProduct("p1", 10, nil), simpleProduct("p2", 5, nil)), store, nil)
	ctx := context.Background()

	state, _, err := e.Add(ctx, "s1", models.CartState{}, AddCommand{ProductID: "p1", Quantity: 1})
	if err != nil {
		t.Fatalf("add p1: %v", err)
	}
	state, _, err = e.Add(ctx, "s1", state, AddCommand{ProductID: "p2", Quantity: 1})
	if err != nil {
		t.Fatalf("add p2: %v", err)
	}
	state.DiscountCode = "SAVE10"

	state, emptied, err := e.Remove(ctx, "s1", state, "p1")
	if err != nil {
		t.Fatalf("remove p1: %v", err)
	}
	if emptied {
		t.Fatal("cart with a remaining line should not report emptied")
	}

	state, emptied, err = e.Remove(ctx, "s1", state, "p2")
	if err != nil {
		t.Fatalf("remove p2: %v", err)
	}
	if !emptied {
		t.Fatal("removing the last line should report emptied")
	}
	if state.HasCart() || state.DiscountCode != "" {
		t.Fatalf("expected cleared state, got cart=%v code=%q", state.Cart, state.DiscountCode)
	}
	if !store.deleted {
		t.Fatal("expected the cart record to be deleted")
	}
}

func TestRemoveMissingLine(t *testing.T) {
	e := testEngine(catalogWith(), &fakeStore{}, nil)

	_, _, err := e.Remove(context.Background(), "s1", models.CartState{Cart: map[string]models.CartLine{}}, "ghost")
	if !errors.Is(err, faults.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestEmptyIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	e := testEngine(catalogWith(), store, nil)
	ctx := context.Background()

	state, err := e.Empty(ctx, "s1", models.CartState{})
	if err != nil {
		t.Fatalf("empty on empty state: %v", err)
	}
	state, err = e.Empty(ctx, "s1", state)
	if err != nil {
		t.Fatalf("second empty: %v", err)
	}
	if state.HasCart() || state.TotalCartAmount != 0 {
		t.Fatal("expected state to remain cleared")
	}
}
