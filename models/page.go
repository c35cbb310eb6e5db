package models

import "time"

// Page is admin-managed static content served by slug.
type Page struct {
	PageID      string `json:"pageId" bson:"pageId"`
	PageName    string `json:"pageName" bson:"pageName"`
	PageSlug    string `json:"pageSlug" bson:"pageSlug"`
	PageContent string `json:"pageContent" bson:"pageContent"`
	PageEnabled bool   `json:"pageEnabled" bson:"pageEnabled"`
}

// MenuItem is one entry of the storefront navigation menu.
type MenuItem struct {
	MenuID string `json:"menuId" bson:"menuId"`
	Title  string `json:"title" bson:"title"`
	Link   string `json:"link" bson:"link"`
	Order  int    `json:"order" bson:"order"`
}

// Review is a customer product review.
type Review struct {
	ReviewID    string    `json:"reviewId" bson:"reviewId"`
	Product     string    `json:"product" bson:"product"`
	Customer    string    `json:"customer" bson:"customer"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Rating      int       `json:"rating" bson:"rating"`
	Date        time.Time `json:"date" bson:"date"`
}

// Index is an indexing event emitted over Redis after entity writes.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
}
