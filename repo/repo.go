// Package repo wraps the Mongo collections in per-entity accessors:
// find, create, update, delete, count and paginate. Handlers go through
// these instead of touching collections directly.
package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page is one page of results plus the total match count.
type Page[T any] struct {
	Data       []T   `json:"data"`
	TotalItems int64 `json:"totalItems"`
}

// Repo is a typed accessor over one collection.
type Repo[T any] struct {
	coll *mongo.Collection
}

func New[T any](coll *mongo.Collection) *Repo[T] {
	return &Repo[T]{coll: coll}
}

func (r *Repo[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *Repo[T]) FindMany(ctx context.Context, filter bson.M, sort bson.M, limit int64) ([]T, error) {
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *Repo[T]) Create(ctx context.Context, doc T) error {
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

func (r *Repo[T]) UpdateOne(ctx context.Context, filter bson.M, set bson.M) error {
	_, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	return err
}

func (r *Repo[T]) UpsertOne(ctx context.Context, filter bson.M, set bson.M) error {
	_, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set},
		options.Update().SetUpsert(true))
	return err
}

func (r *Repo[T]) DeleteOne(ctx context.Context, filter bson.M) error {
	_, err := r.coll.DeleteOne(ctx, filter)
	return err
}

func (r *Repo[T]) DeleteMany(ctx context.Context, filter bson.M) error {
	_, err := r.coll.DeleteMany(ctx, filter)
	return err
}

func (r *Repo[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.coll.CountDocuments(ctx, filter)
}

// Paginate returns one page of numbered results with the overall count.
func (r *Repo[T]) Paginate(ctx context.Context, page, perPage int64, filter bson.M, sort bson.M) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * perPage

	opts := options.Find().SetSkip(skip).SetLimit(perPage)
	if len(sort) > 0 {
		opts.SetSort(sort)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	data := []T{}
	if err := cursor.All(ctx, &data); err != nil {
		return nil, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Page[T]{Data: data, TotalItems: total}, nil
}
