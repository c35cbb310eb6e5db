package models

import "time"

// Product is a catalog entity. ProductStock of nil means stock is not
// tracked for this product (unlimited).
type Product struct {
	ProductID           string    `json:"productId" bson:"productId"`
	ProductPermalink    string    `json:"productPermalink" bson:"productPermalink"`
	ProductTitle        string    `json:"productTitle" bson:"productTitle"`
	ProductPrice        float64   `json:"productPrice" bson:"productPrice"`
	ProductDescription  string    `json:"productDescription" bson:"productDescription"`
	ProductPublished    bool      `json:"productPublished" bson:"productPublished"`
	ProductTags         []string  `json:"productTags" bson:"productTags"`
	ProductImage        string    `json:"productImage" bson:"productImage"`
	ProductStock        *int      `json:"productStock" bson:"productStock"`
	ProductStockDisable bool      `json:"productStockDisable" bson:"productStockDisable"`
	ProductSubscription bool      `json:"productSubscription" bson:"productSubscription"`
	ProductComment      bool      `json:"productComment" bson:"productComment"`
	ProductAddedDate    time.Time `json:"productAddedDate" bson:"productAddedDate"`

	// Populated on reads that join variants; never stored on the product doc.
	Variants []Variant `json:"variants,omitempty" bson:"variants,omitempty"`
}

// Variant belongs to exactly one product and overrides its price and stock
// when selected in a cart line.
type Variant struct {
	VariantID string  `json:"variantId" bson:"variantId"`
	Product   string  `json:"product" bson:"product"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
	Stock     *int    `json:"stock" bson:"stock"`
	AddedDate time.Time `json:"addedDate" bson:"addedDate"`
}
