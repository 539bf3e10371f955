package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/model"
	"github.com/iliyamo/recipe-api/internal/repository"
	"github.com/iliyamo/recipe-api/internal/utils"
)

// AuthService issues and resolves session tokens.
//
// Every successful Authenticate call issues a new token; tokens issued
// earlier stay valid until revoked or, when ttl > 0, until they expire.
type AuthService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	secret []byte
	ttl    time.Duration
	log    logging.Logger
}

func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, secret string, ttl time.Duration, log logging.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, secret: []byte(secret), ttl: ttl, log: log}
}

// Authenticate checks credentials and returns a fresh token for the user.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, model.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", model.User{}, errBadCredentials
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", model.User{}, errBadCredentials
		}
		return "", model.User{}, err
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, password) {
		return "", model.User{}, errBadCredentials
	}

	tok, err := utils.NewSessionToken(s.secret, u.ID, s.ttl)
	if err != nil {
		return "", model.User{}, fmt.Errorf("issue token: %w", err)
	}
	if err := s.tokens.Store(ctx, u.ID, utils.HashTokenID(tok.ID), tok.Exp); err != nil {
		return "", model.User{}, err
	}
	s.log.Debug(ctx, "token issued", "user_id", u.ID)
	return tok.Raw, u, nil
}

// Resolve maps a presented token back to an active user.
func (s *AuthService) Resolve(ctx context.Context, raw string) (model.User, error) {
	if raw == "" {
		return model.User{}, errNoIdentity
	}
	sub, id, err := utils.ParseSessionToken(s.secret, raw)
	if err != nil {
		return model.User{}, errInvalidToken
	}
	uid, err := s.tokens.Validate(ctx, utils.HashTokenID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, errInvalidToken
		}
		return model.User{}, err
	}
	if uid != sub {
		return model.User{}, errInvalidToken
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, errInvalidToken
		}
		return model.User{}, err
	}
	if !u.IsActive {
		return model.User{}, &AuthenticationError{Message: "user inactive or deleted"}
	}
	return u, nil
}

// Revoke invalidates the presented token.
func (s *AuthService) Revoke(ctx context.Context, raw string) error {
	_, id, err := utils.ParseSessionToken(s.secret, raw)
	if err != nil {
		return errInvalidToken
	}
	return s.tokens.RevokeByHash(ctx, utils.HashTokenID(id))
}

// RevokeAll invalidates every token issued to userID.
func (s *AuthService) RevokeAll(ctx context.Context, userID uint64) error {
	return s.tokens.RevokeAllForUser(ctx, userID)
}
