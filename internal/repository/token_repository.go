package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// TokenRepo persists/validates session tokens (single 'token_hash' column).
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Store inserts a token hash row. A zero exp is stored as NULL.
func (r *TokenRepo) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO auth_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, sql.NullTime{Time: exp, Valid: !exp.IsZero()})
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// Validate returns userID if a non-revoked, non-expired token exists.
func (r *TokenRepo) Validate(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		userID    uint64
		expiresAt sql.NullTime
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM auth_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("select token: %w", err)
	}
	if revokedAt.Valid {
		return 0, ErrNotFound
	}
	if expiresAt.Valid && time.Now().UTC().After(expiresAt.Time) {
		return 0, ErrNotFound
	}
	return userID, nil
}

// RevokeByHash marks a token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE auth_tokens SET revoked_at=UTC_TIMESTAMP() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser revokes all user's active tokens.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE auth_tokens SET revoked_at=UTC_TIMESTAMP() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}
