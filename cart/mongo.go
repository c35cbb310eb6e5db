package cart

import (
	"context"

	"calyx/config"
	"calyx/models"
	"calyx/repo"
	"calyx/shipping"

	"go.mongodb.org/mongo-driver/bson"
)

// mongoCatalog resolves products and variants from the catalog collections.
type mongoCatalog struct{}

func (mongoCatalog) Product(ctx context.Context, id string) (*models.Product, error) {
	return repo.Products().FindOne(ctx, bson.M{"productId": id})
}

func (mongoCatalog) Variant(ctx context.Context, variantID, productID string) (*models.Variant, error) {
	return repo.Variants().FindOne(ctx, bson.M{"variantId": variantID, "product": productID})
}

// mongoStore mirrors the session cart into the carts collection.
type mongoStore struct{}

func (mongoStore) Save(ctx context.Context, sessionID string, cart map[string]models.CartLine) error {
	return repo.Carts().UpsertOne(ctx,
		bson.M{"sessionId": sessionID},
		bson.M{"sessionId": sessionID, "cart": cart},
	)
}

func (mongoStore) Delete(ctx context.Context, sessionID string) error {
	return repo.Carts().DeleteOne(ctx, bson.M{"sessionId": sessionID})
}

type mongoDiscounts struct{}

func (mongoDiscounts) ByCode(ctx context.Context, code string) (*models.Discount, error) {
	return repo.Discounts().FindOne(ctx, bson.M{"code": code})
}

// NewMongoEngine wires the engine to the live collections, the held-stock
// aggregation and the shipping calculator.
func NewMongoEngine(cfg *config.Config) *Engine {
	return NewEngine(
		cfg,
		mongoCatalog{},
		mongoStore{},
		mongoDiscounts{},
		repo.StockHeld,
		func(net float64, country string) float64 {
			return shipping.Calculate(net, cfg, country)
		},
	)
}
