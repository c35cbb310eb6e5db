package checkout

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"calyx/faults"
	"calyx/models"
	"calyx/repo"
	"calyx/session"
	"calyx/utils"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// Payment handles GET /api/payment/:orderId. Viewing the page after an
// approved payment triggers the one-time stock decrement; the order's
// productStockUpdated flag stops a refresh from decrementing twice.
func (h *Handlers) Payment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := repo.Orders().FindOne(ctx, bson.M{"orderId": ps.ByName("orderId")})
	if err != nil {
		log.Println("Payment lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not retrieve the order")
		return
	}
	if order == nil {
		utils.RespondWithFault(w, faults.ErrOrderNotFound)
		return
	}

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("Payment session error:", err)
	}

	if h.cfg.TrackStock && state.PaymentApproved && !order.ProductStockUpdated {
		if err := decrementStock(ctx, order); err != nil {
			log.Println("Payment stock update error:", err)
		} else {
			order.ProductStockUpdated = true
		}
	}

	payload := utils.M{"order": order}

	// Wire transfers get a QR carrying the payment reference for banking
	// apps to scan.
	if order.OrderPaymentGateway == "WireTransfer" {
		ref := fmt.Sprintf("%s|%s|%.2f", order.OrderID, order.OrderPaymentID, order.OrderTotal)
		png, err := qrcode.Encode(ref, qrcode.Medium, 256)
		if err != nil {
			log.Println("Payment QR encode error:", err)
		} else {
			payload["paymentQR"] = base64.StdEncoding.EncodeToString(png)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// decrementStock subtracts each ordered quantity from the product or
// variant stock, flooring at zero, then flips the order's one-time flag.
// Read-modify-write per line with no locking; the flag is the only guard
// against re-running for the same order.
func decrementStock(ctx context.Context, order *models.Order) error {
	for _, line := range order.OrderProducts {
		product, err := repo.Products().FindOne(ctx, bson.M{"productId": line.ProductID})
		if err != nil {
			return err
		}
		if product == nil {
			continue
		}

		currentStock := product.ProductStock
		if line.VariantID != "" {
			variant, err := repo.Variants().FindOne(ctx, bson.M{
				"variantId": line.VariantID,
				"product":   line.ProductID,
			})
			if err != nil {
				return err
			}
			if variant == nil {
				zero := 0
				currentStock = &zero
			} else {
				currentStock = variant.Stock
			}
		}

		if currentStock == nil {
			// Untracked stock stays untracked.
			continue
		}

		newStock := *currentStock - line.Quantity
		if newStock < 1 {
			newStock = 0
		}

		if line.VariantID != "" {
			err = repo.Variants().UpdateOne(ctx,
				bson.M{"variantId": line.VariantID},
				bson.M{"stock": newStock})
		} else {
			err = repo.Products().UpdateOne(ctx,
				bson.M{"productId": line.ProductID},
				bson.M{"productStock": newStock})
		}
		if err != nil {
			return err
		}
	}

	return repo.Orders().UpdateOne(ctx,
		bson.M{"orderId": order.OrderID},
		bson.M{"productStockUpdated": true})
}
