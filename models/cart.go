package models

// CartLine is one entry in a cart, keyed by product id or variant id.
type CartLine struct {
	ProductID      string  `json:"productId" bson:"productId"`
	Title          string  `json:"title" bson:"title"`
	Quantity       int     `json:"quantity" bson:"quantity"`
	UnitPrice      float64 `json:"unitPrice" bson:"unitPrice"`
	TotalItemPrice float64 `json:"totalItemPrice" bson:"totalItemPrice"`
	VariantID      string  `json:"variantId,omitempty" bson:"variantId,omitempty"`
	VariantTitle   string  `json:"variantTitle,omitempty" bson:"variantTitle,omitempty"`
	ProductComment string  `json:"productComment,omitempty" bson:"productComment,omitempty"`
	ProductImage   string  `json:"productImage" bson:"productImage"`
	ProductSubscription bool `json:"productSubscription" bson:"productSubscription"`
	// Permalink when the product has one, otherwise the product id.
	Link string `json:"link" bson:"link"`
}

// CartState is the full per-session cart value: the line mapping plus the
// derived totals and the transient checkout fields. It is persisted as one
// blob keyed by session id and passed through the cart engine by value.
type CartState struct {
	Cart             map[string]CartLine `json:"cart" bson:"cart"`
	DiscountCode     string              `json:"discountCode,omitempty" bson:"discountCode,omitempty"`
	CartSubscription bool                `json:"cartSubscription" bson:"cartSubscription"`

	TotalCartAmount   float64 `json:"totalCartAmount" bson:"totalCartAmount"`
	TotalCartShipping float64 `json:"totalCartShipping" bson:"totalCartShipping"`
	// TotalCartItems is the number of distinct lines; TotalCartProducts the
	// sum of quantities.
	TotalCartItems    int `json:"totalCartItems" bson:"totalCartItems"`
	TotalCartProducts int `json:"totalCartProducts" bson:"totalCartProducts"`

	// PaymentApproved is set when an instant gateway completes, and gates
	// the one-time stock decrement on the payment endpoint.
	PaymentApproved bool `json:"paymentApproved" bson:"paymentApproved"`

	Customer CustomerSession `json:"customer" bson:"customer"`
}

// CartRecord is the carts-collection document for one session. The held
// stock aggregation runs over these.
type CartRecord struct {
	SessionID string              `json:"sessionId" bson:"sessionId"`
	Cart      map[string]CartLine `json:"cart" bson:"cart"`
}

// CustomerSession carries the checkout identity captured into orders.
type CustomerSession struct {
	Present      bool   `json:"present" bson:"present"`
	CustomerID   string `json:"customerId,omitempty" bson:"customerId,omitempty"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
	Company      string `json:"company,omitempty" bson:"company,omitempty"`
	FirstName    string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Address1     string `json:"address1,omitempty" bson:"address1,omitempty"`
	Address2     string `json:"address2,omitempty" bson:"address2,omitempty"`
	Country      string `json:"country,omitempty" bson:"country,omitempty"`
	State        string `json:"state,omitempty" bson:"state,omitempty"`
	Postcode     string `json:"postcode,omitempty" bson:"postcode,omitempty"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	OrderComment string `json:"orderComment,omitempty" bson:"orderComment,omitempty"`
}

// HasCart reports whether the session ever had lines added. A nil map means
// "no cart", which is distinct from an empty one.
func (s *CartState) HasCart() bool {
	return s.Cart != nil
}
