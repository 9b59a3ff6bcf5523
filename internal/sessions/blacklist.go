package sessions

import (
	"context"
	"sync"
	"time"
)

// Blacklist revokes access tokens before their natural expiry (logout).
type Blacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryBlacklist is the single-process Blacklist used without Redis.
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, exp := range m.entries {
		if !now.Before(exp) {
			delete(m.entries, k)
		}
	}
	m.entries[token] = now.Add(ttl)
	return nil
}

func (m *MemoryBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.entries[token]
	if !ok {
		return false, nil
	}
	if !m.now().Before(exp) {
		delete(m.entries, token)
		return false, nil
	}
	return true, nil
}
