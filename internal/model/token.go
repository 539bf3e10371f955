package model

import "time"

// AuthToken models a row in the `auth_tokens` table. The token value handed
// to the client is never stored; TokenHash is the SHA-256 hex digest of the
// token's id. A zero ExpiresAt means the token does not expire.
type AuthToken struct {
	ID        uint64     // auth_tokens.id
	UserID    uint64     // auth_tokens.user_id
	TokenHash string     // auth_tokens.token_hash
	ExpiresAt time.Time  // auth_tokens.expires_at (NULL when zero)
	RevokedAt *time.Time // auth_tokens.revoked_at (nullable)
	CreatedAt time.Time  // auth_tokens.created_at
}
