package admin

import (
	"context"
	"sync"

	"github.com/folio/folio/internal/models"
)

// MessageList is the read-only inbox of contact messages.
type MessageList struct {
	fetch  func(ctx context.Context) ([]models.ContactMessage, error)
	notify Notifier

	mu       sync.Mutex
	state    State
	messages []models.ContactMessage
}

func NewMessageList(fetch func(ctx context.Context) ([]models.ContactMessage, error), n Notifier) *MessageList {
	return &MessageList{fetch: fetch, notify: n, state: Loading}
}

func (m *MessageList) Load(ctx context.Context) error {
	msgs, err := m.fetch(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Idle
	if err != nil {
		failure(m.notify, "Failed to fetch messages")
		return err
	}
	m.messages = msgs
	return nil
}

func (m *MessageList) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Messages returns the inbox, newest first as served.
func (m *MessageList) Messages() []models.ContactMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ContactMessage(nil), m.messages...)
}

func (m *MessageList) Unread() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, msg := range m.messages {
		if !msg.Read {
			n++
		}
	}
	return n
}
