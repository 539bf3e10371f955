package model

import "time"

// Tag is a label owned by exactly one user. UserID is always the identity
// that created it and is never taken from request input.
type Tag struct {
	ID        uint64    // tags.id
	UserID    uint64    // tags.user_id (owner)
	Name      string    // tags.name
	CreatedAt time.Time // tags.created_at
}
