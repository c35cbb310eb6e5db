package repo

import (
	"context"

	"calyx/db"
	"calyx/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func Products() *Repo[models.Product]   { return New[models.Product](db.ProductsCollection) }
func Variants() *Repo[models.Variant]   { return New[models.Variant](db.VariantsCollection) }
func Orders() *Repo[models.Order]       { return New[models.Order](db.OrdersCollection) }
func Customers() *Repo[models.Customer] { return New[models.Customer](db.CustomersCollection) }
func Discounts() *Repo[models.Discount] { return New[models.Discount](db.DiscountsCollection) }
func Users() *Repo[models.User]         { return New[models.User](db.UsersCollection) }
func Pages() *Repo[models.Page]         { return New[models.Page](db.PagesCollection) }
func Menu() *Repo[models.MenuItem]      { return New[models.MenuItem](db.MenuCollection) }
func Reviews() *Repo[models.Review]     { return New[models.Review](db.ReviewsCollection) }
func Carts() *Repo[models.CartRecord]   { return New[models.CartRecord](db.CartsCollection) }

// HeldStock is the summed quantity of one cart line id across carts.
type HeldStock struct {
	ID      string `bson:"_id"`
	SumHeld int    `bson:"sumHeld"`
}

// StockHeld aggregates, per line id, how much stock sits in carts belonging
// to sessions other than sessionID. Best effort: no locking, the result can
// be stale by the time it is used.
func StockHeld(ctx context.Context, sessionID string) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"sessionId": bson.M{"$ne": sessionID}}}},
		{{Key: "$project", Value: bson.M{"_id": 0}}},
		{{Key: "$project", Value: bson.M{"o": bson.M{"$objectToArray": "$cart"}}}},
		{{Key: "$unwind", Value: "$o"}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$ifNull": bson.A{"$o.v.variantId", "$o.v.productId"}},
			"sumHeld": bson.M{"$sum": "$o.v.quantity"},
		}}},
	}

	cursor, err := db.CartsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []HeldStock
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	held := make(map[string]int, len(rows))
	for _, row := range rows {
		held[row.ID] = row.SumHeld
	}
	return held, nil
}

// PaginateProductsWithVariants pages published (or all) products with their
// variants attached via a $lookup.
func PaginateProductsWithVariants(ctx context.Context, page, perPage int64, filter bson.M, sort bson.M) (*Page[models.Product], error) {
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * perPage

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "variants",
			"localField":   "productId",
			"foreignField": "product",
			"as":           "variants",
		}}},
	}
	if len(sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: perPage}},
	)

	cursor, err := db.ProductsCollection.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	data := []models.Product{}
	if err := cursor.All(ctx, &data); err != nil {
		return nil, err
	}

	total, err := db.ProductsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Page[models.Product]{Data: data, TotalItems: total}, nil
}
