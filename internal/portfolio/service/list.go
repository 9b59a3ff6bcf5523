package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/cache"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/portfolio/repository"
	"github.com/folio/folio/pkg/metrics"
)

// List serves one list-valued section. T is a pointer to a models type.
type List[T models.Item] struct {
	name    string
	label   string
	repo    repository.ListRepository[T]
	newT    func() T
	visible func(T) bool
	cache   cache.Cache
	ttl     time.Duration
	now     func() time.Time
	newID   func() string
}

func newList[T models.Item](name, label string, repo repository.ListRepository[T], newT func() T, c cache.Cache, ttl time.Duration) *List[T] {
	return &List[T]{name: name, label: label, repo: repo, newT: newT, cache: c, ttl: ttl, now: time.Now, newID: uuid.NewString}
}

func (l *List[T]) key() string { return "portfolio:" + l.name }

// Name is the section identifier, e.g. "education".
func (l *List[T]) Name() string { return l.name }

// All returns every item in display order, bypassing the cache.
func (l *List[T]) All(ctx context.Context) ([]T, error) {
	items, err := l.repo.List(ctx)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, "Portfolio.List "+l.name, "failed to list "+l.name, err)
	}
	return items, nil
}

// Public returns the items visitors may see, served from the cache when possible.
func (l *List[T]) Public(ctx context.Context) ([]T, error) {
	var items []T
	if cachedGet(ctx, l.cache, l.key(), &items) {
		return items, nil
	}
	all, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	items = make([]T, 0, len(all))
	for _, it := range all {
		if l.visible == nil || l.visible(it) {
			items = append(items, it)
		}
	}
	cachedSet(ctx, l.cache, l.key(), items, l.ttl)
	return items, nil
}

// Create decodes body over the type defaults and stores it under a fresh id.
func (l *List[T]) Create(ctx context.Context, body []byte) (T, error) {
	op := "Portfolio.Create " + l.name
	var zero T
	item := l.newT()
	if err := json.Unmarshal(body, item); err != nil {
		return zero, apperr.E(apperr.CodeInvalidArgument, op, "invalid JSON body", err)
	}
	if err := validate(op, item); err != nil {
		return zero, err
	}
	now := l.now().UTC()
	item.Init(l.newID(), now)
	item.Stamp(now)
	if err := l.repo.Create(ctx, item); err != nil {
		return zero, apperr.E(apperr.CodeInternal, op, "failed to create "+l.label, err)
	}
	invalidate(ctx, l.cache, l.key())
	metrics.ContentWrites.WithLabelValues(l.name, "create").Inc()
	return item, nil
}

// Update merges a partial body over the stored item; id and created_at are kept.
func (l *List[T]) Update(ctx context.Context, id string, body []byte) (T, error) {
	op := "Portfolio.Update " + l.name
	var zero T
	item, err := l.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return zero, apperr.E(apperr.CodeNotFound, op, l.label+" not found", err)
	}
	if err != nil {
		return zero, apperr.E(apperr.CodeInternal, op, "failed to load "+l.label, err)
	}
	created := item.Created()
	if err := json.Unmarshal(body, item); err != nil {
		return zero, apperr.E(apperr.CodeInvalidArgument, op, "invalid JSON body", err)
	}
	if err := validate(op, item); err != nil {
		return zero, err
	}
	item.Init(id, created)
	item.Stamp(l.now().UTC())
	if err := l.repo.Replace(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, apperr.E(apperr.CodeNotFound, op, l.label+" not found", err)
		}
		return zero, apperr.E(apperr.CodeInternal, op, "failed to update "+l.label, err)
	}
	invalidate(ctx, l.cache, l.key())
	metrics.ContentWrites.WithLabelValues(l.name, "update").Inc()
	return item, nil
}

func (l *List[T]) Delete(ctx context.Context, id string) error {
	op := "Portfolio.Delete " + l.name
	if err := l.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.E(apperr.CodeNotFound, op, l.label+" not found", err)
		}
		return apperr.E(apperr.CodeInternal, op, "failed to delete "+l.label, err)
	}
	invalidate(ctx, l.cache, l.key())
	metrics.ContentWrites.WithLabelValues(l.name, "delete").Inc()
	return nil
}

// Label is the human name used in responses, e.g. "Education entry".
func (l *List[T]) Label() string { return l.label }
