package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/recipe-api/internal/model"
)

// memoryStore backs the in-memory repositories used with DB_DRIVER=memory
// and in tests. It mirrors the MySQL schema constraints: unique email,
// unique token hash, tags keyed by owner.
type memoryStore struct {
	mu         sync.RWMutex
	users      map[uint64]model.User
	byEmail    map[string]uint64
	tokens     map[string]model.AuthToken
	tags       []model.Tag
	nextUserID uint64
	nextTokID  uint64
	nextTagID  uint64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:   make(map[uint64]model.User),
		byEmail: make(map[string]uint64),
		tokens:  make(map[string]model.AuthToken),
	}
}

// MemoryUserRepo implements UserRepository in memory.
type MemoryUserRepo struct{ s *memoryStore }

func (r *MemoryUserRepo) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.byEmail[u.Email]; ok {
		return ErrEmailExists
	}
	r.s.nextUserID++
	now := time.Now().UTC()
	u.ID = r.s.nextUserID
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	r.s.byEmail[u.Email] = u.ID
	return nil
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return r.s.users[id], nil
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id uint64) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// SetActive flips a user's is_active flag. Profile updates have no HTTP
// surface, so only tests call it to set up inactive accounts.
func (r *MemoryUserRepo) SetActive(id uint64, active bool) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return false
	}
	u.IsActive = active
	r.s.users[id] = u
	return true
}

// MemoryTokenRepo implements TokenRepository in memory.
type MemoryTokenRepo struct{ s *memoryStore }

func (r *MemoryTokenRepo) Store(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTokID++
	r.s.tokens[tokenHash] = model.AuthToken{
		ID:        r.s.nextTokID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: exp,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (r *MemoryTokenRepo) Validate(_ context.Context, tokenHash string) (uint64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tokens[tokenHash]
	if !ok || t.RevokedAt != nil {
		return 0, ErrNotFound
	}
	if !t.ExpiresAt.IsZero() && time.Now().UTC().After(t.ExpiresAt) {
		return 0, ErrNotFound
	}
	return t.UserID, nil
}

func (r *MemoryTokenRepo) RevokeByHash(_ context.Context, tokenHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tokens[tokenHash]; ok && t.RevokedAt == nil {
		now := time.Now().UTC()
		t.RevokedAt = &now
		r.s.tokens[tokenHash] = t
	}
	return nil
}

func (r *MemoryTokenRepo) RevokeAllForUser(_ context.Context, userID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	for h, t := range r.s.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			r.s.tokens[h] = t
		}
	}
	return nil
}

// MemoryTagRepo implements TagRepository in memory.
type MemoryTagRepo struct{ s *memoryStore }

func (r *MemoryTagRepo) Create(_ context.Context, t *model.Tag) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTagID++
	t.ID = r.s.nextTagID
	t.CreatedAt = time.Now().UTC()
	r.s.tags = append(r.s.tags, *t)
	return nil
}

func (r *MemoryTagRepo) ListByOwner(_ context.Context, ownerID uint64) ([]model.Tag, error) {
	r.s.mu.RLock()
	out := []model.Tag{}
	for _, t := range r.s.tags {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name > out[j].Name
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
