// Package admin implements the back-office API: catalog management, order
// administration, discounts, static pages and customer administration. All
// routes here sit behind the admin middleware.
package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"calyx/middleware"
	"calyx/models"
	"calyx/repo"
	"calyx/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Setup handles POST /api/admin/setup. It only works while the users
// collection is empty; the first user created becomes the owner.
func Setup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := repo.Users().Count(ctx, bson.M{})
	if err != nil {
		log.Println("Setup count error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Setup failed")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Setup is already complete")
		return
	}

	var body struct {
		UsersName    string `json:"usersName"`
		UserEmail    string `json:"userEmail"`
		UserPassword string `json:"userPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("Setup decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.UserEmail == "" || len(body.UserPassword) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and a password of at least 6 characters are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.UserPassword), 10)
	if err != nil {
		log.Println("Setup hash error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Setup failed")
		return
	}

	user := models.User{
		UserID:       uuid.NewString(),
		UsersName:    body.UsersName,
		UserEmail:    body.UserEmail,
		UserPassword: string(hash),
		IsAdmin:      true,
		IsOwner:      true,
	}
	if err := repo.Users().Create(ctx, user); err != nil {
		log.Println("Setup insert error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Setup failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User account inserted"})
}

// Login handles POST /api/admin/login and returns an admin-scoped JWT.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("Login decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	user, err := repo.Users().FindOne(ctx, bson.M{"userEmail": body.Email})
	if err != nil {
		log.Println("Login lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Access denied. Check password and try again.")
		return
	}
	if user == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "A user with that email does not exist.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(body.Password)); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Access denied. Check password and try again.")
		return
	}

	token, err := middleware.GenerateToken(user.UserID, user.UserEmail, []string{"admin"}, 12*time.Hour)
	if err != nil {
		log.Println("Login token error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   token,
		"user": utils.M{
			"userId":    user.UserID,
			"usersName": user.UsersName,
			"userEmail": user.UserEmail,
			"isOwner":   user.IsOwner,
		},
	})
}
