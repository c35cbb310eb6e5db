package cart

import (
	"context"
	"fmt"

	"calyx/models"
)

// Totals recomputes the cart-wide figures from the line mapping: distinct
// line count, summed quantities, monetary amount with any still-valid
// discount applied, and shipping on the net amount. A discount code that
// has expired since being applied is dropped and reported via the second
// return value.
func (e *Engine) Totals(ctx context.Context, state models.CartState) (models.CartState, bool, error) {
	items := 0
	products := 0
	amount := 0.0
	for _, line := range state.Cart {
		items++
		products += line.Quantity
		amount += line.TotalItemPrice
	}

	dropped := false
	if state.DiscountCode != "" {
		discount, err := e.discounts.ByCode(ctx, state.DiscountCode)
		if err != nil {
			return state, false, fmt.Errorf("looking up discount: %w", err)
		}
		if discount != nil && discount.ActiveAt(e.now()) {
			amount = discount.Apply(amount)
		} else {
			state.DiscountCode = ""
			dropped = true
		}
	}

	shippingAmount := e.ship(amount, state.Customer.Country)

	state.TotalCartItems = items
	state.TotalCartProducts = products
	state.TotalCartShipping = shippingAmount
	state.TotalCartAmount = amount + shippingAmount
	return state, dropped, nil
}
