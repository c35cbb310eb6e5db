package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/faults"
	"calyx/models"
	"calyx/mq"
	"calyx/repo"
	"calyx/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type variantBody struct {
	Product string  `json:"product"`
	Title   string  `json:"title"`
	Price   float64 `json:"price"`
	Stock   *int    `json:"stock"`
}

func (b *variantBody) validate() error {
	if b.Title == "" {
		return faults.Invalid("title", "is required")
	}
	if b.Price <= 0 {
		return faults.Invalid("price", "should be greater than zero")
	}
	return nil
}

// CreateVariant handles POST /api/admin/product/addvariant.
func CreateVariant(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body variantBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("CreateVariant decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	product, err := repo.Products().FindOne(ctx, bson.M{"productId": body.Product})
	if err != nil {
		log.Println("CreateVariant lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to add variant. Please try again")
		return
	}
	if product == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to add variant. Product not found")
		return
	}

	variant := models.Variant{
		VariantID: uuid.NewString(),
		Product:   body.Product,
		Title:     body.Title,
		Price:     body.Price,
		Stock:     body.Stock,
		AddedDate: time.Now(),
	}
	if err := repo.Variants().Create(ctx, variant); err != nil {
		log.Println("CreateVariant insert error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to add variant. Please try again")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "products", Method: "update", EntityId: body.Product})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Successfully added variant",
		"variant": variant,
	})
}

// UpdateVariant handles POST /api/admin/product/editvariant. The variant must
// belong to the product named in the body.
func UpdateVariant(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		variantBody
		VariantID string `json:"variantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("UpdateVariant decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	variant, err := repo.Variants().FindOne(ctx, bson.M{"variantId": body.VariantID})
	if err != nil {
		log.Println("UpdateVariant lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update variant. Please try again")
		return
	}
	if variant == nil || variant.Product != body.Product {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update variant. Variant not found")
		return
	}

	set := bson.M{
		"title": body.Title,
		"price": body.Price,
		"stock": body.Stock,
	}
	if err := repo.Variants().UpdateOne(ctx, bson.M{"variantId": body.VariantID}, set); err != nil {
		log.Println("UpdateVariant error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update variant. Please try again")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "products", Method: "update", EntityId: body.Product})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Successfully saved variant"})
}

// DeleteVariant handles DELETE /api/admin/product/removevariant/:variantId.
func DeleteVariant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	variantID := ps.ByName("variantId")
	variant, err := repo.Variants().FindOne(ctx, bson.M{"variantId": variantID})
	if err != nil {
		log.Println("DeleteVariant lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to delete variant. Please try again")
		return
	}
	if variant == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to delete variant. Variant not found")
		return
	}

	if err := repo.Variants().DeleteOne(ctx, bson.M{"variantId": variantID}); err != nil {
		log.Println("DeleteVariant error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to delete variant. Please try again")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "products", Method: "update", EntityId: variant.Product})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Successfully removed variant"})
}
