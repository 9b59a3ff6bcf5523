package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// TokenKey is the name the access token is persisted under.
const TokenKey = "portfolio_token"

// TokenStore holds the admin access token. Subscribers are told about every
// change; an empty token means it was cleared.
type TokenStore interface {
	Get() string
	Set(token string) error
	Clear() error
	Subscribe(fn func(token string)) (cancel func())
}

type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(string)
}

func (s *subscribers) add(fn func(string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fns == nil {
		s.fns = map[int]func(string){}
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.fns, id)
		s.mu.Unlock()
	}
}

// notify runs outside any store lock so callbacks may call back into the store.
func (s *subscribers) notify(token string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(token)
	}
}

// MemoryTokenStore keeps the token for the life of the process.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
	subs  subscribers
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (m *MemoryTokenStore) Get() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *MemoryTokenStore) Set(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	m.subs.notify(token)
	return nil
}

func (m *MemoryTokenStore) Clear() error { return m.Set("") }

func (m *MemoryTokenStore) Subscribe(fn func(string)) func() { return m.subs.add(fn) }

// FileTokenStore persists the token as {"portfolio_token": "..."} in a 0600 file.
type FileTokenStore struct {
	path string
	mem  MemoryTokenStore
	mu   sync.Mutex
}

// NewFileTokenStore loads any token already saved at path.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	f := &FileTokenStore{path: path}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}
	var doc map[string]string
	if err := json.Unmarshal(b, &doc); err != nil {
		// unreadable file: start logged out
		return f, nil
	}
	f.mem.token = doc[TokenKey]
	return f, nil
}

func (f *FileTokenStore) Get() string { return f.mem.Get() }

func (f *FileTokenStore) Set(token string) error {
	f.mu.Lock()
	err := f.write(token)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.mem.Set(token)
}

func (f *FileTokenStore) Clear() error {
	f.mu.Lock()
	err := os.Remove(f.path)
	f.mu.Unlock()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return f.mem.Set("")
}

func (f *FileTokenStore) Subscribe(fn func(string)) func() { return f.mem.Subscribe(fn) }

func (f *FileTokenStore) write(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(map[string]string{TokenKey: token})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}
