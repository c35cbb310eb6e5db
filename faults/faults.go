// Package faults is the closed set of failure values the storefront core
// returns. Handlers translate these to HTTP at the route boundary; nothing
// below the handlers writes a response.
package faults

import "errors"

// Business-rule and not-found failures. Messages are the user-facing text.
var (
	ErrProductNotFound = errors.New("Error updating cart. Please try again.")
	ErrVariantNotFound = errors.New("Error updating cart. Variant not found.")
	ErrCartNotFound    = errors.New("There are no items in your cart or your cart is expired")
	ErrLineNotFound    = errors.New("There was an error updating the cart")
	ErrInsufficientStock = errors.New("There is insufficient stock of this product.")
	ErrSubscriptionConflict = errors.New("You cannot combine subscription products with existing items in your cart. Empty your cart and try again.")
	ErrQuantityExceeded = errors.New("The quantity exceeds the max amount. Please contact us for larger orders.")
	ErrEmptyCart     = errors.New("The are no items in your cart.")
	ErrInvalidCode   = errors.New("Discount code is invalid or expired")
	ErrCodeExpired   = errors.New("Discount is expired")
	ErrModuleDisabled = errors.New("Access denied.")
	ErrOrderNotFound  = errors.New("Order not found")
	ErrNotFound       = errors.New("Not found")
)

// Validation wraps bad-input failures with the offending field.
type Validation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v *Validation) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + " " + v.Message
}

// Invalid builds a field validation error.
func Invalid(field, message string) error {
	return &Validation{Field: field, Message: message}
}

// AsValidation unwraps a *Validation if err carries one.
func AsValidation(err error) (*Validation, bool) {
	var v *Validation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// IsBusiness reports whether err is one of the closed business/not-found
// failures above, i.e. safe to show verbatim to the caller.
func IsBusiness(err error) bool {
	for _, known := range []error{
		ErrProductNotFound, ErrVariantNotFound, ErrCartNotFound,
		ErrLineNotFound, ErrInsufficientStock, ErrSubscriptionConflict,
		ErrQuantityExceeded, ErrEmptyCart, ErrInvalidCode, ErrCodeExpired,
		ErrModuleDisabled, ErrOrderNotFound, ErrNotFound,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	if _, ok := AsValidation(err); ok {
		return true
	}
	return false
}
