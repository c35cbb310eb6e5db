package models

import "time"

// Customer is a storefront account. Password is a bcrypt hash and is
// stripped before any response is written.
type Customer struct {
	CustomerID string    `json:"customerId" bson:"customerId"`
	Email      string    `json:"email" bson:"email"`
	Password   string    `json:"password,omitempty" bson:"password"`
	FirstName  string    `json:"firstName" bson:"firstName"`
	LastName   string    `json:"lastName" bson:"lastName"`
	Address1   string    `json:"address1" bson:"address1"`
	Address2   string    `json:"address2" bson:"address2"`
	Country    string    `json:"country" bson:"country"`
	State      string    `json:"state" bson:"state"`
	Postcode   string    `json:"postcode" bson:"postcode"`
	Phone      string    `json:"phone" bson:"phone"`
	Company    string    `json:"company" bson:"company"`
	Created    time.Time `json:"created" bson:"created"`

	ResetToken       string    `json:"-" bson:"resetToken,omitempty"`
	ResetTokenExpiry time.Time `json:"-" bson:"resetTokenExpiry,omitempty"`
}

// User is an admin back-office account.
type User struct {
	UserID       string `json:"userId" bson:"userId"`
	UsersName    string `json:"usersName" bson:"usersName"`
	UserEmail    string `json:"userEmail" bson:"userEmail"`
	UserPassword string `json:"-" bson:"userPassword"`
	IsAdmin      bool   `json:"isAdmin" bson:"isAdmin"`
	IsOwner      bool   `json:"isOwner" bson:"isOwner"`
}
