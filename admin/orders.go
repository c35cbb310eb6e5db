package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/emailer"
	"calyx/config"
	"calyx/models"
	"calyx/mq"
	"calyx/repo"
	"calyx/search"
	"calyx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var orderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusPaid:      true,
	models.OrderStatusShipped:   true,
	models.OrderStatusCancelled: true,
}

// ListOrders handles GET /api/admin/orders. An optional status query narrows
// the list, a search query goes through the order index.
func ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cfg := config.Load()
	opts := utils.ParseQueryOptions(r, cfg.ProductsPerPage)

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["orderStatus"] = status
	}
	if opts.Search != "" {
		ids := search.Query("orders", opts.Search)
		if ids == nil {
			ids = []string{}
		}
		filter["orderId"] = bson.M{"$in": ids}
	}

	page, err := repo.Orders().Paginate(ctx, opts.Page, opts.Limit, filter, bson.M{"orderDate": -1})
	if err != nil {
		log.Println("ListOrders error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, page)
}

// GetOrder handles GET /api/admin/order/view/:orderId.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := repo.Orders().FindOne(ctx, bson.M{"orderId": ps.ByName("orderId")})
	if err != nil {
		log.Println("GetOrder error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving order")
		return
	}
	if order == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus handles POST /api/admin/order/updateorder.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("UpdateOrderStatus decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !orderStatuses[body.Status] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	order, err := repo.Orders().FindOne(ctx, bson.M{"orderId": body.OrderID})
	if err != nil {
		log.Println("UpdateOrderStatus lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update the order status")
		return
	}
	if order == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if err := repo.Orders().UpdateOne(ctx, bson.M{"orderId": body.OrderID}, bson.M{"orderStatus": body.Status}); err != nil {
		log.Println("UpdateOrderStatus error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update the order status")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "orders", Method: "update", EntityId: body.OrderID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Order status successfully updated"})
}

// UpdateOrderTracking handles POST /api/admin/order/updatetracking. Setting a
// tracking number moves the order to Shipped and notifies the customer.
func UpdateOrderTracking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		OrderID         string `json:"orderId"`
		Tracking        string `json:"tracking"`
		TrackingCompany string `json:"trackingCompany"`
		TrackingURL     string `json:"trackingURL"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("UpdateOrderTracking decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Tracking == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Tracking number is required")
		return
	}

	order, err := repo.Orders().FindOne(ctx, bson.M{"orderId": body.OrderID})
	if err != nil {
		log.Println("UpdateOrderTracking lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update the order tracking")
		return
	}
	if order == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	set := bson.M{
		"orderTrackingNumber": body.Tracking,
		"trackingCompany":     body.TrackingCompany,
		"trackingURL":         body.TrackingURL,
		"orderStatus":         models.OrderStatusShipped,
	}
	if err := repo.Orders().UpdateOne(ctx, bson.M{"orderId": body.OrderID}, set); err != nil {
		log.Println("UpdateOrderTracking error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update the order tracking")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "orders", Method: "update", EntityId: body.OrderID})
	if order.OrderEmail != "" {
		cfg := config.Load()
		emailer.Send(order.OrderEmail, cfg.CartTitle+" - Your order has shipped",
			"Your order has been shipped. Tracking number: "+body.Tracking)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Order tracking successfully updated"})
}

// DeleteOrder handles DELETE /api/admin/order/delete/:orderId.
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderId")
	if err := repo.Orders().DeleteOne(ctx, bson.M{"orderId": orderID}); err != nil {
		log.Println("DeleteOrder error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error deleting order")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "orders", Method: "delete", EntityId: orderID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Order successfully deleted"})
}
