package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"calyx/repo"

	"go.mongodb.org/mongo-driver/bson"
)

// Rebuild re-reads one entity type from the database and swaps the fresh
// index in. Called by the indexing worker and once at startup.
func Rebuild(ctx context.Context, entityType string) error {
	switch entityType {
	case "products":
		return rebuildProducts(ctx)
	case "orders":
		return rebuildOrders(ctx)
	case "customers":
		return rebuildCustomers(ctx)
	default:
		return fmt.Errorf("unknown entity type %q", entityType)
	}
}

// RebuildAll builds every index. Startup only; failures are logged because
// an empty index is preferable to not serving.
func RebuildAll(ctx context.Context) {
	for _, t := range []string{"products", "orders", "customers"} {
		if err := Rebuild(ctx, t); err != nil {
			log.Printf("search: initial %s index build failed: %v", t, err)
		}
	}
}

func rebuildProducts(ctx context.Context) error {
	products, err := repo.Products().FindMany(ctx, bson.M{}, nil, 0)
	if err != nil {
		return err
	}
	b := newBuilder()
	for _, p := range products {
		b.add(p.ProductID,
			p.ProductTitle,
			p.ProductDescription,
			strings.Join(p.ProductTags, " "),
		)
	}
	idx.replace("products", b.p, b.order)
	return nil
}

func rebuildOrders(ctx context.Context) error {
	orders, err := repo.Orders().FindMany(ctx, bson.M{}, nil, 0)
	if err != nil {
		return err
	}
	b := newBuilder()
	for _, o := range orders {
		b.add(o.OrderID,
			o.OrderEmail,
			o.OrderFirstname,
			o.OrderLastname,
			o.OrderPostcode,
			o.OrderStatus,
		)
	}
	idx.replace("orders", b.p, b.order)
	return nil
}

func rebuildCustomers(ctx context.Context) error {
	customers, err := repo.Customers().FindMany(ctx, bson.M{}, nil, 0)
	if err != nil {
		return err
	}
	b := newBuilder()
	for _, c := range customers {
		b.add(c.CustomerID,
			c.Email,
			c.FirstName,
			c.LastName,
			c.Phone,
		)
	}
	idx.replace("customers", b.p, b.order)
	return nil
}
