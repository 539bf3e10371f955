// This file defines the tag repository. A Tag belongs to a single user and
// every query here is constrained by that owner, so no method can read or
// write another user's rows whatever the caller passes in.

package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"fmt"
	"time"

	"github.com/iliyamo/recipe-api/internal/model"
)

// TagRepo encapsulates all database queries related to tags.
type TagRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewTagRepo constructs a TagRepo with the provided DB handle.
func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create inserts a new tag for t.UserID. On success the tag's ID and
// CreatedAt fields are populated.
func (r *TagRepo) Create(ctx context.Context, t *model.Tag) error {
	const qInsert = "INSERT INTO tags (user_id, name, created_at) VALUES (?, ?, ?)"
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, qInsert, t.UserID, t.Name, now)
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	t.ID = uint64(id)
	t.CreatedAt = now
	return nil
}

// ListByOwner returns all tags for a specific owner ordered by name
// descending, newest first among equal names. tags.name uses a binary
// collation so the order is bytewise.
func (r *TagRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Tag, error) {
	const q = `SELECT id, user_id, name, created_at
	           FROM tags WHERE user_id = ? ORDER BY name DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	out := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return out, nil
}
