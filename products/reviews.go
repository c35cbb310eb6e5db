package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/faults"
	"calyx/globals"
	"calyx/models"
	"calyx/repo"
	"calyx/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// AddReview handles POST /api/product/:id/review. Requires a logged-in
// customer (JWT via middleware).
func (h *Handlers) AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	customerID, _ := r.Context().Value(globals.UserIDKey).(string)
	if customerID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "You need to be logged in to create a review")
		return
	}

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Rating      int    `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("AddReview decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	body.Title = utils.CleanHTML(body.Title)
	body.Description = utils.CleanHTML(body.Description)

	if body.Title == "" {
		utils.RespondWithFault(w, faults.Invalid("title", "Please supply a review title"))
		return
	}
	if body.Description == "" {
		utils.RespondWithFault(w, faults.Invalid("description", "Please supply a review description"))
		return
	}
	if len(body.Title) > 50 {
		utils.RespondWithFault(w, faults.Invalid("title", "Review title is too long"))
		return
	}
	if len(body.Description) > 200 {
		utils.RespondWithFault(w, faults.Invalid("description", "Review description is too long"))
		return
	}
	if body.Rating < 0 || body.Rating > 5 {
		utils.RespondWithFault(w, faults.Invalid("rating", "Please supply a valid rating"))
		return
	}

	productID := ps.ByName("id")
	product, err := repo.Products().FindOne(ctx, bson.M{"productId": productID})
	if err != nil {
		log.Println("AddReview product lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to submit review")
		return
	}
	if product == nil {
		utils.RespondWithFault(w, faults.ErrNotFound)
		return
	}

	review := models.Review{
		ReviewID:    uuid.NewString(),
		Product:     product.ProductID,
		Customer:    customerID,
		Title:       body.Title,
		Description: body.Description,
		Rating:      body.Rating,
		Date:        time.Now(),
	}
	if err := repo.Reviews().Create(ctx, review); err != nil {
		log.Println("AddReview insert error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to submit review")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Review successfully submitted"})
}

// GetReviews handles GET /api/product/:id/reviews.
func (h *Handlers) GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reviews, err := repo.Reviews().FindMany(ctx,
		bson.M{"product": ps.ByName("id")},
		bson.M{"date": -1}, 0)
	if err != nil {
		log.Println("GetReviews error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reviews": reviews})
}
