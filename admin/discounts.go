package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/faults"
	"calyx/models"
	"calyx/repo"
	"calyx/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type discountBody struct {
	Code  string    `json:"code"`
	Type  string    `json:"type"`
	Value float64   `json:"value"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (b *discountBody) validate() error {
	if b.Code == "" {
		return faults.Invalid("code", "is required")
	}
	if b.Type != models.DiscountTypePercent && b.Type != models.DiscountTypeAmount {
		return faults.Invalid("type", "should be either percent or amount")
	}
	if b.Value <= 0 {
		return faults.Invalid("value", "should be greater than zero")
	}
	if !b.End.After(b.Start) {
		return faults.Invalid("end", "should be after the start date")
	}
	return nil
}

// ListDiscounts handles GET /api/admin/discounts.
func ListDiscounts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	discounts, err := repo.Discounts().FindMany(ctx, bson.M{}, bson.M{"start": -1}, 0)
	if err != nil {
		log.Println("ListDiscounts error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving discounts")
		return
	}
	if discounts == nil {
		discounts = []models.Discount{}
	}

	utils.RespondWithJSON(w, http.StatusOK, discounts)
}

// CreateDiscount handles POST /api/admin/discount/create. Codes are unique.
func CreateDiscount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body discountBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("CreateDiscount decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	count, err := repo.Discounts().Count(ctx, bson.M{"code": body.Code})
	if err != nil {
		log.Println("CreateDiscount count error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error creating discount")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Discount code already exists")
		return
	}

	discount := models.Discount{
		DiscountID: uuid.NewString(),
		Code:       body.Code,
		Type:       body.Type,
		Value:      body.Value,
		Start:      body.Start,
		End:        body.End,
	}
	if err := repo.Discounts().Create(ctx, discount); err != nil {
		log.Println("CreateDiscount insert error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error creating discount")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":  "Discount code created successfully",
		"discount": discount,
	})
}

// UpdateDiscount handles PUT /api/admin/discount/update/:discountId.
func UpdateDiscount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	discountID := ps.ByName("discountId")

	var body discountBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("UpdateDiscount decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	count, err := repo.Discounts().Count(ctx, bson.M{
		"code":       body.Code,
		"discountId": bson.M{"$ne": discountID},
	})
	if err != nil {
		log.Println("UpdateDiscount count error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error updating discount")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Discount code already exists")
		return
	}

	set := bson.M{
		"code":  body.Code,
		"type":  body.Type,
		"value": body.Value,
		"start": body.Start,
		"end":   body.End,
	}
	if err := repo.Discounts().UpdateOne(ctx, bson.M{"discountId": discountID}, set); err != nil {
		log.Println("UpdateDiscount error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error updating discount")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Successfully saved"})
}

// DeleteDiscount handles DELETE /api/admin/discount/delete/:discountId.
func DeleteDiscount(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := repo.Discounts().DeleteOne(ctx, bson.M{"discountId": ps.ByName("discountId")}); err != nil {
		log.Println("DeleteDiscount error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Error deleting discount")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Discount code successfully deleted"})
}
