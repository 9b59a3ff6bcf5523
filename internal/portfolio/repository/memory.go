package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/folio/folio/internal/models"
)

// MemoryList is an in-memory ListRepository used when no Mongo URI is configured
// and in unit tests. Items are stored as copies so callers never alias stored state.
type MemoryList[T models.Item] struct {
	mu    sync.RWMutex
	newT  func() T
	less  func(a, b T) bool
	ids   []string
	store map[string][]byte
}

func NewMemoryList[T models.Item](newT func() T, order Ordering[T]) *MemoryList[T] {
	return &MemoryList[T]{newT: newT, less: order.Less, store: make(map[string][]byte)}
}

func (m *MemoryList[T]) decode(raw []byte) (T, error) {
	item := m.newT()
	if err := json.Unmarshal(raw, item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

func (m *MemoryList[T]) List(ctx context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.ids))
	for _, id := range m.ids {
		item, err := m.decode(m.store[id])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if m.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return m.less(out[i], out[j]) })
	}
	return out, nil
}

func (m *MemoryList[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.store[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return m.decode(raw)
}

func (m *MemoryList[T]) Create(ctx context.Context, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[item.GetID()]; !ok {
		m.ids = append(m.ids, item.GetID())
	}
	m.store[item.GetID()] = raw
	return nil
}

func (m *MemoryList[T]) Replace(ctx context.Context, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[item.GetID()]; !ok {
		return ErrNotFound
	}
	m.store[item.GetID()] = raw
	return nil
}

func (m *MemoryList[T]) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	for i, v := range m.ids {
		if v == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			break
		}
	}
	return nil
}

// MemoryDoc is the in-memory DocRepository.
type MemoryDoc[T any] struct {
	mu  sync.RWMutex
	raw []byte
}

func NewMemoryDoc[T any]() *MemoryDoc[T] { return &MemoryDoc[T]{} }

func (m *MemoryDoc[T]) Load(ctx context.Context) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.raw == nil {
		return nil, ErrNotFound
	}
	doc := new(T)
	if err := json.Unmarshal(m.raw, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *MemoryDoc[T]) Save(ctx context.Context, doc *T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
	return nil
}
