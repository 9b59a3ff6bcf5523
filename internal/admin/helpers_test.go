package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/folio/folio/internal/testserver"
)

const (
	adminEmail    = testserver.AdminEmail
	adminPassword = testserver.AdminPassword
)

var errBoom = errors.New("boom")

func backend(t *testing.T) *testserver.Server { return testserver.New(t) }

type recorder struct {
	mu  sync.Mutex
	got []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	r.got = append(r.got, n)
	r.mu.Unlock()
}

func (r *recorder) last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.got) == 0 {
		return Notification{}
	}
	return r.got[len(r.got)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

type fakeList[T Entry] struct {
	mu      sync.Mutex
	items   []T
	setID   func(*T, string)
	allErr  error
	saveErr error
	delErr  error
	calls   []string
	seq     int
}

func (f *fakeList[T]) All(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allErr != nil {
		return nil, f.allErr
	}
	return append([]T(nil), f.items...), nil
}

func (f *fakeList[T]) Create(ctx context.Context, item interface{}) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create")
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	v := item.(T)
	f.seq++
	f.setID(&v, fmt.Sprintf("id-%d", f.seq))
	f.items = append(f.items, v)
	return &v, nil
}

func (f *fakeList[T]) Update(ctx context.Context, id string, patch interface{}) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update:"+id)
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	v := patch.(T)
	for i := range f.items {
		if f.items[i].GetID() == id {
			f.items[i] = v
		}
	}
	return &v, nil
}

func (f *fakeList[T]) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete:"+id)
	if f.delErr != nil {
		return f.delErr
	}
	out := f.items[:0]
	for _, it := range f.items {
		if it.GetID() != id {
			out = append(out, it)
		}
	}
	f.items = out
	return nil
}

func (f *fakeList[T]) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeDoc[T any] struct {
	mu      sync.Mutex
	doc     T
	getErr  error
	updErr  error
	updates int
}

func (f *fakeDoc[T]) Get(ctx context.Context) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	d := f.doc
	return &d, nil
}

func (f *fakeDoc[T]) Update(ctx context.Context, patch interface{}) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updErr != nil {
		return nil, f.updErr
	}
	if v, ok := patch.(T); ok {
		f.doc = v
	}
	d := f.doc
	return &d, nil
}
