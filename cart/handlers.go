package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"calyx/faults"
	"calyx/session"
	"calyx/utils"

	"github.com/julienschmidt/httprouter"
)

// FlexInt decodes a quantity supplied as either a JSON number or a string.
// Unparseable values decode to zero, which the engine coerces to one.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// Handlers exposes the cart engine over HTTP.
type Handlers struct {
	engine *Engine
}

func NewHandlers(engine *Engine) *Handlers {
	return &Handlers{engine: engine}
}

// AddToCart handles POST /api/cart/product.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		ProductID       string  `json:"productId"`
		ProductQuantity FlexInt `json:"productQuantity"`
		ProductVariant  string  `json:"productVariant"`
		ProductComment  string  `json:"productComment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("AddToCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("AddToCart session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	state, result, err := h.engine.Add(ctx, sessionID, state, AddCommand{
		ProductID: body.ProductID,
		Quantity:  int(body.ProductQuantity),
		VariantID: body.ProductVariant,
		Comment:   body.ProductComment,
	})
	if err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("AddToCart session save error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save your session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":        "Cart successfully updated",
		"cartId":         result.CartID,
		"totalCartItems": result.TotalCartItems,
	})
}

// UpdateCart handles POST /api/cart/updatecart. Quantity zero removes the line.
func (h *Handlers) UpdateCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		CartID   string  `json:"cartId"`
		Quantity FlexInt `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("UpdateCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("UpdateCart session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	state, err = h.engine.Update(ctx, sessionID, state, body.CartID, int(body.Quantity))
	// The state may have changed even on error (zero-quantity removal,
	// cart-not-found recovery); persist it before answering.
	if saveErr := session.Save(ctx, sessionID, state); saveErr != nil {
		log.Println("UpdateCart session save error:", saveErr)
	}
	if err != nil {
		if errors.Is(err, faults.ErrLineNotFound) {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{
				"message":        err.Error(),
				"totalCartItems": state.TotalCartItems,
			})
			return
		}
		utils.RespondWithFault(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":        "Cart successfully updated",
		"totalCartItems": state.TotalCartItems,
	})
}

// RemoveFromCart handles POST /api/cart/removeProduct.
func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		CartID string `json:"cartId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("RemoveFromCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("RemoveFromCart session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	if !state.HasCart() {
		utils.RespondWithError(w, http.StatusBadRequest, "Product not found in cart")
		return
	}

	state, _, err = h.engine.Remove(ctx, sessionID, state, body.CartID)
	if err != nil {
		if errors.Is(err, faults.ErrLineNotFound) {
			utils.RespondWithError(w, http.StatusBadRequest, "Product not found in cart")
			return
		}
		utils.RespondWithFault(w, err)
		return
	}

	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("RemoveFromCart session save error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save your session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":        "Product successfully removed",
		"totalCartItems": state.TotalCartItems,
	})
}

// EmptyCart handles POST /api/cart/empty. A no-op on an already-empty cart.
func (h *Handlers) EmptyCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("EmptyCart session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	state, err = h.engine.Empty(ctx, sessionID, state)
	if err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("EmptyCart session save error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save your session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Cart successfully emptied"})
}

// GetCart handles GET /api/cart, returning the current cart mapping.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("GetCart session error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not load your session")
		return
	}

	if state.Cart == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"cart": utils.M{}})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"cart": state.Cart})
}
