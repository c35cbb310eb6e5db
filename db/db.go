package db

import (
	"context"
	"log"
	"time"

	"calyx/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client

	ProductsCollection  *mongo.Collection
	VariantsCollection  *mongo.Collection
	CartsCollection     *mongo.Collection
	OrdersCollection    *mongo.Collection
	CustomersCollection *mongo.Collection
	DiscountsCollection *mongo.Collection
	UsersCollection     *mongo.Collection
	PagesCollection     *mongo.Collection
	MenuCollection      *mongo.Collection
	ReviewsCollection   *mongo.Collection
)

// Init connects to MongoDB and binds the collection handles.
func Init(ctx context.Context, cfg *config.Config) error {
	opts := options.Client().ApplyURI(cfg.MongoURI)

	var err error
	Client, err = mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := Client.Ping(pingCtx, nil); err != nil {
		return err
	}

	database := Client.Database(cfg.MongoDB)
	ProductsCollection = database.Collection("products")
	VariantsCollection = database.Collection("variants")
	CartsCollection = database.Collection("carts")
	OrdersCollection = database.Collection("orders")
	CustomersCollection = database.Collection("customers")
	DiscountsCollection = database.Collection("discounts")
	UsersCollection = database.Collection("users")
	PagesCollection = database.Collection("pages")
	MenuCollection = database.Collection("menu")
	ReviewsCollection = database.Collection("reviews")

	if err := createIndexes(ctx); err != nil {
		// Index creation failures shouldn't stop the server; log and move on.
		log.Printf("db: index creation failed: %v", err)
	}
	return nil
}

func createIndexes(ctx context.Context) error {
	var err error

	_, e := CartsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"sessionId": 1},
		Options: options.Index().SetUnique(true).SetName("unique_sessionId"),
	})
	if e != nil {
		err = e
	}

	_, e = DiscountsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"code": 1},
		Options: options.Index().SetUnique(true).SetName("unique_code"),
	})
	if e != nil {
		err = e
	}

	_, e = CustomersCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true).SetName("unique_email"),
	})
	if e != nil {
		err = e
	}

	_, e = VariantsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"product": 1},
		Options: options.Index().SetName("by_product"),
	})
	if e != nil {
		err = e
	}
	return err
}

// Close disconnects the client on shutdown.
func Close(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("db: disconnect error: %v", err)
	}
}
