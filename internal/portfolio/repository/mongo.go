package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/folio/folio/internal/models"
)

// MongoList stores one section per collection, keyed by the item id in _id.
type MongoList[T models.Item] struct {
	col  *mongo.Collection
	newT func() T
	sort bson.D
}

func NewMongoList[T models.Item](col *mongo.Collection, newT func() T, order Ordering[T]) *MongoList[T] {
	return &MongoList[T]{col: col, newT: newT, sort: order.Sort}
}

func (m *MongoList[T]) List(ctx context.Context) ([]T, error) {
	opts := options.Find()
	if len(m.sort) > 0 {
		opts.SetSort(m.sort)
	}
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []T{}
	for cur.Next(ctx) {
		item := m.newT()
		if err := cur.Decode(item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, cur.Err()
}

func (m *MongoList[T]) Get(ctx context.Context, id string) (T, error) {
	item := m.newT()
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(item); err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return item, nil
}

func (m *MongoList[T]) Create(ctx context.Context, item T) error {
	_, err := m.col.InsertOne(ctx, item)
	return err
}

func (m *MongoList[T]) Replace(ctx context.Context, item T) error {
	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": item.GetID()}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoList[T]) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// singletonID is the fixed _id of every singleton document.
const singletonID = "singleton"

// MongoDoc keeps a singleton in a collection of its own.
type MongoDoc[T any] struct {
	col *mongo.Collection
}

func NewMongoDoc[T any](col *mongo.Collection) *MongoDoc[T] { return &MongoDoc[T]{col: col} }

func (m *MongoDoc[T]) Load(ctx context.Context) (*T, error) {
	doc := new(T)
	if err := m.col.FindOne(ctx, bson.M{"_id": singletonID}).Decode(doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (m *MongoDoc[T]) Save(ctx context.Context, doc *T) error {
	_, err := m.col.ReplaceOne(ctx, bson.M{"_id": singletonID}, doc, options.Replace().SetUpsert(true))
	return err
}
