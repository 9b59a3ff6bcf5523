package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/models"
)

// ErrNotFound is returned when an id (or a singleton document) is absent.
var ErrNotFound = apperr.ErrNotFound

// ListRepository persists one list-valued section. T is a pointer to a models type.
type ListRepository[T models.Item] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) error
	Replace(ctx context.Context, item T) error
	Delete(ctx context.Context, id string) error
}

// DocRepository persists a singleton document.
type DocRepository[T any] interface {
	Load(ctx context.Context) (*T, error)
	Save(ctx context.Context, doc *T) error
}

// Ordering describes how a list is returned, once for Mongo and once in memory.
// Less must be a strict ordering; ties keep insertion order.
type Ordering[T any] struct {
	Sort bson.D
	Less func(a, b T) bool
}

type ranked interface{ Rank() int }

// ByRank sorts ascending by the order field.
func ByRank[T ranked]() Ordering[T] {
	return Ordering[T]{
		Sort: bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}},
		Less: func(a, b T) bool { return a.Rank() < b.Rank() },
	}
}

// NewestFirst sorts by creation time, most recent first.
func NewestFirst[T interface{ Created() time.Time }]() Ordering[T] {
	return Ordering[T]{
		Sort: bson.D{{Key: "created_at", Value: -1}},
		Less: func(a, b T) bool { return a.Created().After(b.Created()) },
	}
}

// ByPublishDate sorts blog articles newest first.
func ByPublishDate() Ordering[*models.BlogArticle] {
	return Ordering[*models.BlogArticle]{
		Sort: bson.D{{Key: "publish_date", Value: -1}},
		Less: func(a, b *models.BlogArticle) bool { return a.PublishDate.After(b.PublishDate) },
	}
}
