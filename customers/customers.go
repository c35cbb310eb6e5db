// Package customers implements storefront accounts: registration, login,
// guest-checkout session capture and profile updates.
package customers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"calyx/faults"
	"calyx/globals"
	"calyx/middleware"
	"calyx/models"
	"calyx/mq"
	"calyx/repo"
	"calyx/session"
	"calyx/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type customerBody struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	Country      string `json:"country"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	OrderComment string `json:"orderComment"`
}

func (b *customerBody) validate(requirePassword bool) error {
	if !emailRe.MatchString(b.Email) {
		return faults.Invalid("email", "should be a valid email address")
	}
	if requirePassword && len(b.Password) < 6 {
		return faults.Invalid("password", "should be at least 6 characters")
	}
	if b.FirstName == "" {
		return faults.Invalid("firstName", "is required")
	}
	if b.LastName == "" {
		return faults.Invalid("lastName", "is required")
	}
	return nil
}

// intoSession copies the checkout identity into the cart session, the way
// orders expect to find it.
func intoSession(state *models.CartState, customerID string, b customerBody) {
	state.Customer = models.CustomerSession{
		Present:      true,
		CustomerID:   customerID,
		Email:        b.Email,
		Company:      b.Company,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		Address1:     b.Address1,
		Address2:     b.Address2,
		Country:      b.Country,
		State:        b.State,
		Postcode:     b.Postcode,
		Phone:        b.Phone,
		OrderComment: b.OrderComment,
	}
}

// Register handles POST /api/customer/create.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body customerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("Register decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(true); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	existing, err := repo.Customers().FindOne(ctx, bson.M{"email": body.Email})
	if err != nil {
		log.Println("Register lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to insert customer")
		return
	}
	if existing != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "A customer already exists with that email address")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), 10)
	if err != nil {
		log.Println("Register hash error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to insert customer")
		return
	}

	customer := models.Customer{
		CustomerID: uuid.NewString(),
		Email:      body.Email,
		Password:   string(hash),
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Address1:   body.Address1,
		Address2:   body.Address2,
		Country:    body.Country,
		State:      body.State,
		Postcode:   body.Postcode,
		Phone:      body.Phone,
		Company:    body.Company,
		Created:    time.Now(),
	}
	if err := repo.Customers().Create(ctx, customer); err != nil {
		log.Println("Register insert error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to insert customer")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "customers", Method: "create", EntityId: customer.CustomerID})

	sessionID := session.ID(w, r)
	state, _ := session.Get(ctx, sessionID)
	intoSession(&state, customer.CustomerID, body)
	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("Register session save error:", err)
	}

	customer.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, customer)
}

// Login handles POST /api/customer/login: bcrypt check then a customer JWT,
// plus capture into the cart session for checkout.
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

	customer, err := repo.Customers().FindOne(ctx, bson.M{"email": body.Email})
	if err != nil {
		log.Println("Login lookup error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Access denied. Check password and try again.")
		return
	}
	if customer == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "A customer with that email does not exist.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(body.Password)); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Access denied. Check password and try again.")
		return
	}

	token, err := middleware.GenerateToken(customer.CustomerID, customer.Email, []string{"customer"}, 24*time.Hour)
	if err != nil {
		log.Println("Login token error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to generate token")
		return
	}

	sessionID := session.ID(w, r)
	state, _ := session.Get(ctx, sessionID)
	intoSession(&state, customer.CustomerID, customerBody{
		Email:     customer.Email,
		Company:   customer.Company,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Address1:  customer.Address1,
		Address2:  customer.Address2,
		Country:   customer.Country,
		State:     customer.State,
		Postcode:  customer.Postcode,
		Phone:     customer.Phone,
	})
	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("Login session save error:", err)
	}

	customer.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":  "Login successful",
		"token":    token,
		"customer": customer,
	})
}

// SaveToSession handles POST /api/customer/save: guest checkout identity,
// no account created.
func SaveToSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body customerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("SaveToSession decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(false); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	sessionID := session.ID(w, r)
	state, _ := session.Get(ctx, sessionID)
	intoSession(&state, state.Customer.CustomerID, body)
	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("SaveToSession session save error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Could not save your session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, state.Customer)
}

// Update handles PUT /api/customer/update for a logged-in customer.
func Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	customerID, _ := r.Context().Value(globals.UserIDKey).(string)
	if customerID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body customerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Println("Update decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := body.validate(false); err != nil {
		utils.RespondWithFault(w, err)
		return
	}

	set := bson.M{
		"email":     body.Email,
		"firstName": body.FirstName,
		"lastName":  body.LastName,
		"address1":  body.Address1,
		"address2":  body.Address2,
		"country":   body.Country,
		"state":     body.State,
		"postcode":  body.Postcode,
		"phone":     body.Phone,
		"company":   body.Company,
	}
	if err := repo.Customers().UpdateOne(ctx, bson.M{"customerId": customerID}, set); err != nil {
		log.Println("Update error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to update customer")
		return
	}

	mq.Emit(ctx, models.Index{EntityType: "customers", Method: "update", EntityId: customerID})

	sessionID := session.ID(w, r)
	state, _ := session.Get(ctx, sessionID)
	intoSession(&state, customerID, body)
	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("Update session save error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Customer updated"})
}

// Logout handles POST /api/customer/logout: drops the checkout identity
// from the session but leaves the cart alone.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID := session.ID(w, r)
	state, err := session.Get(ctx, sessionID)
	if err != nil {
		log.Println("Logout session error:", err)
	}
	state.Customer = models.CustomerSession{}
	if err := session.Save(ctx, sessionID, state); err != nil {
		log.Println("Logout session save error:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out"})
}
