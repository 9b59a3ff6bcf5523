package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/cache"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/portfolio/repository"
	"github.com/folio/folio/pkg/logger"
	"github.com/folio/folio/pkg/metrics"
)

// Singleton serves one document section (hero, about, skills, settings).
// The document is created from its defaults on first read.
type Singleton[T any] struct {
	name     string
	repo     repository.DocRepository[T]
	defaults func() *T
	prepare  func(*T)
	replace  func(doc *T, fields map[string]json.RawMessage)
	cache    cache.Cache
	ttl      time.Duration
	now      func() time.Time
}

func newSingleton[T any](name string, repo repository.DocRepository[T], defaults func() *T, c cache.Cache, ttl time.Duration) *Singleton[T] {
	return &Singleton[T]{name: name, repo: repo, defaults: defaults, cache: c, ttl: ttl, now: time.Now}
}

func (s *Singleton[T]) key() string { return "portfolio:" + s.name }

// Get returns the stored document, seeding the defaults when none exists.
func (s *Singleton[T]) Get(ctx context.Context) (*T, error) {
	op := "Portfolio.Get " + s.name
	doc := new(T)
	if hit := cachedGet(ctx, s.cache, s.key(), doc); hit {
		return doc, nil
	}
	doc, err := s.load(ctx, op)
	if err != nil {
		return nil, err
	}
	cachedSet(ctx, s.cache, s.key(), doc, s.ttl)
	return doc, nil
}

func (s *Singleton[T]) load(ctx context.Context, op string) (*T, error) {
	doc, err := s.repo.Load(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		doc = s.defaults()
		touch(doc, s.now().UTC())
		if err := s.repo.Save(ctx, doc); err != nil {
			return nil, apperr.E(apperr.CodeInternal, op, "failed to seed "+s.name, err)
		}
		return doc, nil
	}
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to load "+s.name, err)
	}
	return doc, nil
}

// Update merges a partial JSON body over the stored document. Absent and null
// fields keep their stored values; the merged document must still be complete.
// Fields named by the replace hook are overwritten rather than merged.
func (s *Singleton[T]) Update(ctx context.Context, body []byte) (*T, error) {
	op := "Portfolio.Update " + s.name
	doc, err := s.load(ctx, op)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "invalid JSON body", err)
	}
	if s.replace != nil {
		s.replace(doc, fields)
	}
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "invalid JSON body", err)
	}
	if s.prepare != nil {
		s.prepare(doc)
	}
	if err := validate(op, doc); err != nil {
		return nil, err
	}
	touch(doc, s.now().UTC())
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to save "+s.name, err)
	}
	invalidate(ctx, s.cache, s.key())
	metrics.ContentWrites.WithLabelValues(s.name, "update").Inc()
	return doc, nil
}

func touch(doc any, now time.Time) {
	if t, ok := doc.(interface{ Touch(time.Time) }); ok {
		t.Touch(now)
	}
}

func validate(op string, doc any) error {
	f, ok := doc.(models.Form)
	if !ok {
		return nil
	}
	if m := f.Missing(); len(m) > 0 {
		return apperr.E(apperr.CodeInvalidArgument, op, "missing required fields: "+strings.Join(m, ", "), nil)
	}
	return nil
}

func cachedGet(ctx context.Context, c cache.Cache, key string, dst any) bool {
	hit, err := c.GetJSON(ctx, key, dst)
	if err != nil {
		logger.Warnf("cache get %s: %v", key, err)
		return false
	}
	if hit {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
	return hit
}

func cachedSet(ctx context.Context, c cache.Cache, key string, val any, ttl time.Duration) {
	if err := c.SetJSON(ctx, key, val, ttl); err != nil {
		logger.Warnf("cache set %s: %v", key, err)
	}
}

func invalidate(ctx context.Context, c cache.Cache, keys ...string) {
	if err := c.Del(ctx, keys...); err != nil {
		logger.Warnf("cache invalidate %v: %v", keys, err)
	}
}
