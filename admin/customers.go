package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"calyx/config"
	"calyx/models"
	"calyx/mq"
	"calyx/repo"
	"calyx/search"
	"calyx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// ListCustomers handles GET /api/admin/customers. A search query goes
// through the customer index; passwords never leave the server.
func ListCustomers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cfg := config.Load()
	opts := utils.ParseQueryOptions(r, cfg.ProductsPerPage)

	filter := bson.M{}
	if opts.Search != "" {
		ids := search.Query("customers", opts.Search)
		if ids == nil {
			ids = []string{}
		}
		filter["customerId"] = bson.M{"$in": ids}
	}

	page, err := repo.Customers().Paginate(ctx, opts.Page, opts.Limit, filter, bson.M{"created": -1})
	if err != nil {
		log.Println("ListCustomers error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving customers")
		return
	}
	for i := range page.Data {
		page.Data[i].Password = ""
	}

	utils.RespondWithJSON(w, http.StatusOK, page)
}

// GetCustomer handles GET /api/admin/customer/view/:customerId.
func GetCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	customer, err := repo.Customers().FindOne(ctx, bson.M{"customerId": ps.ByName("customerId")})
	if err != nil {
		log.Println("GetCustomer error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving customer")
		return
	}
	if customer == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Customer not found")
		return
	}
	customer.Password = ""

	utils.RespondWithJSON(w, http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/admin/customer/delete/:customerId.
// Past orders keep their snapshot and are not touched.
func DeleteCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	customerID := ps.ByName("customerId")
	if err := repo.Customers().DeleteOne(ctx, bson.M{"customerId": customerID}); err != nil {
		log.Println("DeleteCustomer error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to delete customer")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "customers", Method: "delete", EntityId: customerID})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Customer deleted"})
}

// DeleteReview handles DELETE /api/admin/review/delete/:reviewId.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := repo.Reviews().DeleteOne(ctx, bson.M{"reviewId": ps.ByName("reviewId")}); err != nil {
		log.Println("DeleteReview error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to delete review")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Review successfully deleted"})
}
