package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/recipe-api/internal/model"
)

// UserRepository persists accounts. Emails passed in are expected to be
// normalized already.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenRepository persists session token digests.
type TokenRepository interface {
	Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	Validate(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// TagRepository persists tags. Every method is keyed by the owner.
type TagRepository interface {
	Create(ctx context.Context, t *model.Tag) error
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Tag, error)
}

// Set groups the repositories a process needs.
type Set struct {
	Users  UserRepository
	Tokens TokenRepository
	Tags   TagRepository
}

// NewMySQLSet returns repositories backed by db.
func NewMySQLSet(db *sql.DB) Set {
	return Set{
		Users:  NewUserRepo(db),
		Tokens: NewTokenRepo(db),
		Tags:   NewTagRepo(db),
	}
}

// NewMemorySet returns repositories sharing one in-memory store.
func NewMemorySet() Set {
	s := newMemoryStore()
	return Set{
		Users:  &MemoryUserRepo{s: s},
		Tokens: &MemoryTokenRepo{s: s},
		Tags:   &MemoryTagRepo{s: s},
	}
}
