package customers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"calyx/config"
	"calyx/emailer"
	"calyx/repo"
	"calyx/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// ForgotPassword handles POST /api/customer/forgotten. The response is the
// same whether or not the email exists, so the endpoint cannot be used to
// probe for accounts.
func ForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("ForgotPassword decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	customer, err := repo.Customers().FindOne(ctx, bson.M{"email": body.Email})
	if err != nil {
		log.Println("ForgotPassword lookup error:", err)
	}
	if customer != nil {
		token := utils.GenerateRandomString(20)
		set := bson.M{
			"resetToken":       token,
			"resetTokenExpiry": time.Now().Add(resetTokenTTL),
		}
		if err := repo.Customers().UpdateOne(ctx, bson.M{"customerId": customer.CustomerID}, set); err != nil {
			log.Println("ForgotPassword update error:", err)
			utils.RespondWithError(w, http.StatusBadRequest, "Password reset failed")
			return
		}

		cfg := config.Load()
		link := fmt.Sprintf("%s/customer/reset/%s", cfg.BaseURL, token)
		emailer.Send(customer.Email, fmt.Sprintf("%s - Password reset", cfg.CartTitle),
			fmt.Sprintf("You requested a password reset. Follow this link to set a new password: %s\nThe link expires in one hour.", link))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "If your account exists, a password reset has been sent to your email",
	})
}

// ResetPassword handles POST /api/customer/reset/:token.
func ResetPassword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("ResetPassword decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(body.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password should be at least 6 characters")
		return
	}

	customer, err := repo.Customers().FindOne(ctx, bson.M{
		"resetToken":       ps.ByName("token"),
		"resetTokenExpiry": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		log.Println("ResetPassword lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Password reset failed")
		return
	}
	if customer == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Password reset token is invalid or has expired")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), 10)
	if err != nil {
		log.Println("ResetPassword hash error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Password reset failed")
		return
	}

	set := bson.M{
		"password":         string(hash),
		"resetToken":       "",
		"resetTokenExpiry": time.Time{},
	}
	if err := repo.Customers().UpdateOne(ctx, bson.M{"customerId": customer.CustomerID}, set); err != nil {
		log.Println("ResetPassword update error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Password reset failed")
		return
	}

	cfg := config.Load()
	emailer.Send(customer.Email, fmt.Sprintf("%s - Password successfully reset", cfg.CartTitle),
		"Your password was successfully updated.")

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Password successfully updated"})
}
