package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/portfolio/repository"
	"github.com/folio/folio/pkg/metrics"
)

// Inbox is the append-only store behind the contact form.
type Inbox struct {
	repo  repository.ListRepository[*models.ContactMessage]
	now   func() time.Time
	newID func() string
}

func newInbox(repo repository.ListRepository[*models.ContactMessage]) *Inbox {
	return &Inbox{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Submit stores a visitor message.
func (i *Inbox) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	const op = "Inbox.Submit"
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if m := msg.Missing(); len(m) > 0 {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "missing required fields: "+strings.Join(m, ", "), nil)
	}
	now := i.now().UTC()
	msg.Init(i.newID(), now)
	msg.Stamp(now)
	if err := i.repo.Create(ctx, msg); err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "failed to store message", err)
	}
	metrics.ContactMessages.Inc()
	return msg, nil
}

// List returns every message, newest first.
func (i *Inbox) List(ctx context.Context) ([]*models.ContactMessage, error) {
	msgs, err := i.repo.List(ctx)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, "Inbox.List", "failed to list messages", err)
	}
	return msgs, nil
}
