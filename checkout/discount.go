// Package checkout covers the tail of the purchase flow: discount codes,
// cart data for the checkout pages, order creation and the payment endpoint
// with its one-time stock decrement.
package checkout

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/cart"
	"calyx/config"
	"calyx/faults"
	"calyx/models"
	"calyx/repo"
	"calyx/session"
	"calyx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Handlers exposes the checkout flow over HTTP.
type Handlers struct {
	cfg    *config.Config
	engine *cart.Engine
	hub    *Hub
}

func NewHandlers(cfg *config.Config, engine *cart.Engine, hub *Hub) *Handlers {
	return &Handlers{cfg: cfg, engine: engine, hub: hub}
}

// AddDiscountCode handles POST /api/checkout/adddiscountcode.
func (h *Handlers) AddDiscountCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		DiscountCode string `json:"discountCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("AddDiscountCode decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("AddDiscountCode session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	state, err = h.applyDiscount(ctx, state, body.DiscountCode)
	if err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("AddDiscountCode session save error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save your session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Discount code applied"})
}

func (h *Handlers) applyDiscount(ctx context.Context, state models.CartState, code string) (models.CartState, error) {
	if !state.HasCart() {
		return state, faults.ErrEmptyCart
	}
	if !h.cfg.DiscountsEnabled {
		return state, faults.ErrModuleDisabled
	}
	if code == "" {
		return state, faults.ErrInvalidCode
	}

	discount, err := repo.Discounts().FindOne(ctx, bson.M{"code": code})
	if err != nil {
		return state, err
	}
	if discount == nil {
		return state, faults.ErrInvalidCode
	}
	if !discount.ActiveAt(time.Now()) {
		return state, faults.ErrCodeExpired
	}

	state.DiscountCode = discount.Code
	state, _, err = h.engine.Totals(ctx, state)
	return state, err
}

// RemoveDiscountCode handles POST /api/checkout/removediscountcode.
func (h *Handlers) RemoveDiscountCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("RemoveDiscountCode session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	if !state.HasCart() {
		utils.RespondWithFault(w, faults.ErrEmptyCart)
		return
	}

	state.DiscountCode = ""
	state, _, err = h.engine.Totals(ctx, state)
	if err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("RemoveDiscountCode session save error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save your session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Discount code removed"})
}

// CartData handles GET /api/checkout/cartdata. Recomputes totals on the way
// out so an expired discount is dropped before the client sees stale
// figures; the drop is reported as discountRemoved.
func (h *Handlers) CartData(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("CartData session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	dropped := false
	if state.HasCart() {
		state, dropped, err = h.engine.Totals(ctx, state)
		if err != nil {
			utils.RespondWithFault(w, err)
			return
		}
		if err := session.Save(ctx, sessionID, state); err != nil {
			log.Println("CartData session save error:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"cart":            state.Cart,
		"session":         state,
		"currencySymbol":  h.cfg.CurrencySymbol,
		"discountRemoved": dropped,
	})
}
