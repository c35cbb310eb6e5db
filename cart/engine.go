// Package cart implements the shopping-cart mutation engine: add, update,
// remove and empty, with the stock, quantity and subscription rules applied
// before any state is written. The engine owns no HTTP concerns; handlers
// live in handlers.go.
package cart

import (
	"context"
	"fmt"
	"time"

	"calyx/config"
	"calyx/faults"
	"calyx/models"
)

// Catalog resolves products and variants. Absent entities return (nil, nil).
type Catalog interface {
	Product(ctx context.Context, id string) (*models.Product, error)
	// Variant returns the variant only when it belongs to productID.
	Variant(ctx context.Context, variantID, productID string) (*models.Variant, error)
}

// Store persists the cart line mapping keyed by session id.
type Store interface {
	Save(ctx context.Context, sessionID string, cart map[string]models.CartLine) error
	Delete(ctx context.Context, sessionID string) error
}

// Discounts looks up discount codes. Absent codes return (nil, nil).
type Discounts interface {
	ByCode(ctx context.Context, code string) (*models.Discount, error)
}

// HeldFunc reports, per line id, the stock sitting in carts of sessions
// other than sessionID.
type HeldFunc func(ctx context.Context, sessionID string) (map[string]int, error)

// ShipFunc computes shipping for a net merchandise amount and destination.
type ShipFunc func(netAmount float64, country string) float64

// Engine applies cart business rules. Operations take a CartState by value
// and return the new state; the caller persists the session blob.
type Engine struct {
	cfg       *config.Config
	catalog   Catalog
	store     Store
	discounts Discounts
	held      HeldFunc
	ship      ShipFunc
	now       func() time.Time
}

func NewEngine(cfg *config.Config, catalog Catalog, store Store, discounts Discounts, held HeldFunc, ship ShipFunc) *Engine {
	return &Engine{
		cfg:       cfg,
		catalog:   catalog,
		store:     store,
		discounts: discounts,
		held:      held,
		ship:      ship,
		now:       time.Now,
	}
}

// AddCommand is one add-to-cart request.
type AddCommand struct {
	ProductID string
	Quantity  int
	VariantID string
	Comment   string
}

// AddResult reports the line the add landed on.
type AddResult struct {
	CartID         string
	TotalCartItems int
}

// Add applies the add-to-cart rules and persists the cart. The returned
// state is valid even on error (it is the unchanged input).
func (e *Engine) Add(ctx context.Context, sessionID string, state models.CartState, cmd AddCommand) (models.CartState, AddResult, error) {
	quantity := cmd.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if e.cfg.MaxQuantity > 0 && quantity > e.cfg.MaxQuantity {
		return state, AddResult{}, faults.ErrQuantityExceeded
	}

	product, err := e.catalog.Product(ctx, cmd.ProductID)
	if err != nil {
		return state, AddResult{}, fmt.Errorf("resolving product: %w", err)
	}
	if product == nil {
		return state, AddResult{}, faults.ErrProductNotFound
	}

	// A subscription locks the cart; a subscription product needs an empty one.
	if state.CartSubscription {
		return state, AddResult{}, faults.ErrSubscriptionConflict
	}
	if product.ProductSubscription && len(state.Cart) != 0 {
		return state, AddResult{}, faults.ErrSubscriptionConflict
	}

	cartID := product.ProductID
	price := product.ProductPrice
	stock := product.ProductStock
	variantTitle := ""
	if cmd.VariantID != "" {
		variant, err := e.catalog.Variant(ctx, cmd.VariantID, cmd.ProductID)
		if err != nil {
			return state, AddResult{}, fmt.Errorf("resolving variant: %w", err)
		}
		if variant == nil {
			return state, AddResult{}, faults.ErrVariantNotFound
		}
		cartID = variant.VariantID
		price = variant.Price
		stock = variant.Stock
		variantTitle = variant.Title
	}

	if err := e.checkStock(ctx, sessionID, product, stock, cartID, quantity); err != nil {
		return state, AddResult{}, err
	}

	if state.Cart == nil {
		state.Cart = map[string]models.CartLine{}
	}

	if line, ok := state.Cart[cartID]; ok {
		line.Quantity += quantity
		line.TotalItemPrice = price * float64(line.Quantity)
		state.Cart[cartID] = line
	} else {
		link := product.ProductPermalink
		if link == "" {
			link = product.ProductID
		}
		state.Cart[cartID] = models.CartLine{
			ProductID:           product.ProductID,
			Title:               product.ProductTitle,
			Quantity:            quantity,
			UnitPrice:           price,
			TotalItemPrice:      price * float64(quantity),
			VariantID:           cmd.VariantID,
			VariantTitle:        variantTitle,
			ProductComment:      cmd.Comment,
			ProductImage:        product.ProductImage,
			ProductSubscription: product.ProductSubscription,
			Link:                link,
		}
	}

	if product.ProductSubscription {
		state.CartSubscription = true
	}

	state, err = e.finish(ctx, sessionID, state)
	if err != nil {
		return state, AddResult{}, err
	}
	return state, AddResult{CartID: cartID, TotalCartItems: state.TotalCartItems}, nil
}

// Update sets the quantity of an existing line. Quantity zero removes the
// line and still reports ErrLineNotFound, matching the storefront's update
// semantics: callers wanting a clean removal use Remove.
func (e *Engine) Update(ctx context.Context, sessionID string, state models.CartState, cartID string, quantity int) (models.CartState, error) {
	if !state.HasCart() {
		return state, faults.ErrCartNotFound
	}

	if quantity == 0 {
		if _, ok := state.Cart[cartID]; ok {
			state, _, err := e.Remove(ctx, sessionID, state, cartID)
			if err != nil {
				return state, err
			}
			return state, faults.ErrLineNotFound
		}
		return state, faults.ErrLineNotFound
	}
	if quantity < 0 {
		quantity = 1
	}

	line, ok := state.Cart[cartID]
	if !ok {
		return state, faults.ErrLineNotFound
	}

	product, err := e.catalog.Product(ctx, line.ProductID)
	if err != nil {
		return state, fmt.Errorf("resolving product: %w", err)
	}
	if product == nil {
		return state, faults.ErrLineNotFound
	}

	price := product.ProductPrice
	stock := product.ProductStock
	if line.VariantID != "" {
		variant, err := e.catalog.Variant(ctx, line.VariantID, product.ProductID)
		if err != nil {
			return state, fmt.Errorf("resolving variant: %w", err)
		}
		if variant == nil {
			return state, faults.ErrVariantNotFound
		}
		price = variant.Price
		stock = variant.Stock
	}

	// The new requested quantity is the comparand, not an increment.
	if err := e.checkStock(ctx, sessionID, product, stock, cartID, quantity); err != nil {
		return state, err
	}

	line.Quantity = quantity
	line.UnitPrice = price
	line.TotalItemPrice = price * float64(quantity)
	state.Cart[cartID] = line

	return e.finish(ctx, sessionID, state)
}

// Remove deletes one line. Removing the last line runs the empty-cart
// procedure; emptied reports that.
func (e *Engine) Remove(ctx context.Context, sessionID string, state models.CartState, cartID string) (models.CartState, bool, error) {
	if _, ok := state.Cart[cartID]; !ok {
		return state, false, faults.ErrLineNotFound
	}

	delete(state.Cart, cartID)

	if len(state.Cart) == 0 {
		state, err := e.Empty(ctx, sessionID, state)
		return state, true, err
	}

	state, err := e.finish(ctx, sessionID, state)
	return state, false, err
}

// Empty clears the cart mapping, discount code, subscription flag and
// totals, and deletes the session's cart record. Idempotent.
func (e *Engine) Empty(ctx context.Context, sessionID string, state models.CartState) (models.CartState, error) {
	state.Cart = nil
	state.DiscountCode = ""
	state.CartSubscription = false
	state.TotalCartAmount = 0
	state.TotalCartShipping = 0
	state.TotalCartItems = 0
	state.TotalCartProducts = 0

	if err := e.store.Delete(ctx, sessionID); err != nil {
		return state, fmt.Errorf("deleting cart record: %w", err)
	}
	return state, nil
}

// checkStock enforces the stock rules when stock tracking applies to this
// line. Two separate rejections: the requested quantity alone exceeding the
// line's stock, and the quantity exceeding stock net of what other sessions
// hold. Read-then-decide, no locking.
func (e *Engine) checkStock(ctx context.Context, sessionID string, product *models.Product, stock *int, cartID string, quantity int) error {
	if !e.cfg.TrackStock || product.ProductStockDisable || stock == nil {
		return nil
	}

	if quantity > *stock {
		return faults.ErrInsufficientStock
	}

	held, err := e.held(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("aggregating held stock: %w", err)
	}
	if sumHeld, ok := held[cartID]; ok {
		netStock := *stock - sumHeld
		if quantity > netStock {
			return faults.ErrInsufficientStock
		}
	}
	return nil
}

// finish recomputes totals and persists the cart mapping, in that order.
// These are the explicit, ordered steps of every successful mutation.
func (e *Engine) finish(ctx context.Context, sessionID string, state models.CartState) (models.CartState, error) {
	state, _, err := e.Totals(ctx, state)
	if err != nil {
		return state, err
	}
	state.CartSubscription = hasSubscription(state.Cart)

	if err := e.store.Save(ctx, sessionID, state.Cart); err != nil {
		return state, fmt.Errorf("persisting cart: %w", err)
	}
	return state, nil
}

func hasSubscription(cart map[string]models.CartLine) bool {
	for _, line := range cart {
		if line.ProductSubscription {
			return true
		}
	}
	return false
}
