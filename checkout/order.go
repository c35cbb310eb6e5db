package checkout

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/emailer"
	"calyx/faults"
	"calyx/models"
	"calyx/mq"
	"calyx/repo"
	"calyx/session"
	"calyx/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// orderBody carries optional overrides for the customer fields captured in
// the session; any field left blank falls back to the session value.
type orderBody struct {
	Email        string `json:"email"`
	Company      string `json:"company"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	Country      string `json:"country"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Phone        string `json:"phone"`
	OrderComment string `json:"orderComment"`
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

// snapshot builds the immutable order document from the current cart state.
// Cart lines are copied by value; later cart mutations cannot touch it.
func snapshot(state models.CartState, body orderBody, gateway, status, message string) models.Order {
	products := make(map[string]models.CartLine, len(state.Cart))
	for id, line := range state.Cart {
		products[id] = line
	}

	c := state.Customer
	return models.Order{
		OrderID:             uuid.NewString(),
		OrderPaymentID:      uuid.NewString(),
		OrderPaymentGateway: gateway,
		OrderPaymentMessage: message,
		OrderTotal:          state.TotalCartAmount,
		OrderShipping:       state.TotalCartShipping,
		OrderItemCount:      state.TotalCartItems,
		OrderProductCount:   state.TotalCartProducts,
		OrderCustomer:       c.CustomerID,
		OrderEmail:          fallback(body.Email, c.Email),
		OrderCompany:        fallback(body.Company, c.Company),
		OrderFirstname:      fallback(body.FirstName, c.FirstName),
		OrderLastname:       fallback(body.LastName, c.LastName),
		OrderAddr1:          fallback(body.Address1, c.Address1),
		OrderAddr2:          fallback(body.Address2, c.Address2),
		OrderCountry:        fallback(body.Country, c.Country),
		OrderState:          fallback(body.State, c.State),
		OrderPostcode:       fallback(body.Postcode, c.Postcode),
		OrderPhoneNumber:    fallback(body.Phone, c.Phone),
		OrderComment:        fallback(body.OrderComment, c.OrderComment),
		OrderStatus:         status,
		OrderDate:           time.Now(),
		OrderProducts:       products,
		OrderType:           "Single",
	}
}

// CreateOrder handles POST /api/checkout/order/create: the instant "Instore"
// gateway. The order is approved immediately; stock is still decremented
// only on the payment endpoint.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body orderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("CreateOrder decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	h.placeOrder(ctx, w, r, body, "Instore",
		models.OrderStatusPaid, "Your payment was successfully completed", true)
}

// ConfirmWireTransfer handles POST /api/checkout/order/wiretransfer: the
// deferred gateway. The order stays Pending until an admin marks it Paid.
func (h *Handlers) ConfirmWireTransfer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body orderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("ConfirmWireTransfer decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	h.placeOrder(ctx, w, r, body, "WireTransfer",
		models.OrderStatusPending, "The order will be completed upon receiving payment", false)
}

func (h *Handlers) placeOrder(ctx context.Context, w http.ResponseWriter, r *http.Request, body orderBody, gateway, status, message string, instant bool) {
	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("placeOrder session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	if !state.HasCart() || len(state.Cart) == 0 {
		utils.RespondWithFault(w, faults.ErrEmptyCart)
		return
	}

	// Settle the totals one last time before the snapshot is taken.
	state, _, err = h.engine.Totals(ctx, state)
	if err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	order := snapshot(state, body, gateway, status, message)
	if err := repo.Orders().Create(ctx, order); err != nil {
		log.Println("placeOrder insert error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Your order declined. Please try again")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "orders", Method: "create", EntityId: order.OrderID})

	// No atomicity with the insert above: if emptying fails the order
	// still stands and the cart survives. Logged, not reconciled.
	state, err = h.engine.Empty(ctx, sessionID, state)
	if err != nil {
		log.Println("placeOrder cart empty error:", err)
	}

	if instant {
		state.PaymentApproved = true
		state.Customer = models.CustomerSession{}
	}
	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("placeOrder session save error:", err)
	}

	emailer.Send(order.OrderEmail,
		"Your order with "+h.cfg.CartTitle,
		"Order "+order.OrderID+" received. "+order.OrderPaymentMessage)

	h.hub.Broadcast(order.OrderID, order.OrderStatus)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Order created successfully",
		"orderId": order.OrderID,
	})
}
