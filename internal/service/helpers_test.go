package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/model"
	"github.com/iliyamo/recipe-api/internal/queue"
	"github.com/iliyamo/recipe-api/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	set      repository.Set
	events   *recordingPublisher
	accounts *AccountService
	auth     *AuthService
	tags     *TagService
}

func newFixture(t *testing.T, ttl time.Duration) *fixture {
	t.Helper()
	set := repository.NewMemorySet()
	events := &recordingPublisher{}
	log := logging.Discard()
	return &fixture{
		set:      set,
		events:   events,
		accounts: NewAccountService(set.Users, events, PasswordPolicy{MinLength: 5, BcryptCost: bcrypt.MinCost}, log),
		auth:     NewAuthService(set.Users, set.Tokens, "test-secret", ttl, log),
		tags:     NewTagService(set.Tags, events, log),
	}
}

// failingUsers lets tests inject repository errors.
type failingUsers struct {
	repository.UserRepository
	getErr    error
	createErr error
}

func (f failingUsers) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if f.getErr != nil {
		return model.User{}, f.getErr
	}
	return f.UserRepository.GetByEmail(ctx, email)
}

func (f failingUsers) Create(ctx context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.UserRepository.Create(ctx, u)
}

var errDBDown = errors.New("db down")
