// Package queue defines message payloads exchanged over the message broker
// and the RabbitMQ publisher/consumer that carry them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/recipe-api/internal/model"
)

const (
	EventUserCreated = "user.created"
	EventTagCreated  = "tag.created"
)

// Event is published after an account or tag is persisted. It carries enough
// for downstream consumers to audit the change without querying the primary
// database. Passwords and tokens are never included.
type Event struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	UserID     uint64 `json:"user_id"`
	Email      string `json:"email,omitempty"`
	Staff      bool   `json:"staff,omitempty"`
	TagID      uint64 `json:"tag_id,omitempty"`
	TagName    string `json:"tag_name,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

func NewUserCreated(u model.User) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventUserCreated,
		UserID:     u.ID,
		Email:      u.Email,
		Staff:      u.IsStaff,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func NewTagCreated(t model.Tag) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventTagCreated,
		UserID:     t.UserID,
		TagID:      t.ID,
		TagName:    t.Name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
