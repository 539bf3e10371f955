package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/model"
	"github.com/iliyamo/recipe-api/internal/queue"
	"github.com/iliyamo/recipe-api/internal/repository"
	"github.com/iliyamo/recipe-api/internal/utils"
)

// PasswordPolicy controls password acceptance and hashing.
type PasswordPolicy struct {
	MinLength  int
	BcryptCost int
}

// AccountService creates accounts and checks passwords.
type AccountService struct {
	users  repository.UserRepository
	events EventPublisher
	policy PasswordPolicy
	log    logging.Logger
}

func NewAccountService(users repository.UserRepository, events EventPublisher, policy PasswordPolicy, log logging.Logger) *AccountService {
	if policy.MinLength <= 0 {
		policy.MinLength = 5
	}
	return &AccountService{users: users, events: events, policy: policy, log: log}
}

// CreateUser registers a regular account.
func (s *AccountService) CreateUser(ctx context.Context, email, password, name string) (model.User, error) {
	return s.create(ctx, email, password, name, false)
}

// CreateSuperuser registers an account with is_staff and is_superuser set.
func (s *AccountService) CreateSuperuser(ctx context.Context, email, password string) (model.User, error) {
	return s.create(ctx, email, password, "", true)
}

// VerifyPassword reports whether plain matches the user's stored hash.
func (s *AccountService) VerifyPassword(u model.User, plain string) bool {
	return utils.VerifyPassword(u.PasswordHash, plain)
}

func (s *AccountService) create(ctx context.Context, email, password, name string, elevated bool) (model.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return model.User{}, invalid("email", "this field is required")
	}
	if !utils.ValidEmail(email) {
		return model.User{}, invalid("email", "enter a valid email address")
	}
	if utf8.RuneCountInString(password) < s.policy.MinLength {
		return model.User{}, invalid("password", fmt.Sprintf("ensure this field has at least %d characters", s.policy.MinLength))
	}
	if len(password) > utils.MaxPasswordBytes {
		return model.User{}, invalid("password", fmt.Sprintf("ensure this field has no more than %d bytes", utils.MaxPasswordBytes))
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.User{}, invalid("email", "user with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, err
	}

	hash, err := utils.HashPassword(password, s.policy.BcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
		IsStaff:      elevated,
		IsSuperuser:  elevated,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		// lost a race with a concurrent registration for the same email
		if errors.Is(err, repository.ErrEmailExists) {
			return model.User{}, invalid("email", "user with this email already exists")
		}
		return model.User{}, err
	}

	s.log.Info(ctx, "user created", "user_id", u.ID, "superuser", elevated)
	publish(ctx, s.events, s.log, queue.NewUserCreated(u))
	return u, nil
}
