package models

import (
	"strings"
	"time"
)

// Base carries the identity and timestamps shared by every list item.
type Base struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (b Base) GetID() string      { return b.ID }
func (b *Base) SetID(id string)   { b.ID = id }
func (b Base) Created() time.Time { return b.CreatedAt }

// Init resets identity, e.g. after a client body was decoded over the item.
func (b *Base) Init(id string, created time.Time) {
	b.ID = id
	b.CreatedAt = created
}

// Stamp sets UpdatedAt, and CreatedAt when it is still zero.
func (b *Base) Stamp(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Item is implemented by pointers to list-valued content types.
type Item interface {
	GetID() string
	SetID(id string)
	Created() time.Time
	Init(id string, created time.Time)
	Stamp(now time.Time)
	Form
}

// Form is a content form with its own required-field schema. The same schema
// gates the admin editors and the server handlers.
type Form interface {
	Kind() string
	Missing() []string
}

// Stamped is embedded by singleton documents.
type Stamped struct {
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (s *Stamped) Touch(now time.Time) { s.UpdatedAt = now }

// missing returns the names whose values are blank, in argument order.
func missing(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}
