package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing of token ids
	"encoding/hex"  // hex encoding and decoding functions
	"errors"
	"strconv"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrMalformedToken is returned when a token cannot be parsed, carries a bad
// signature, has expired, or lacks the subject/id claims.
var ErrMalformedToken = errors.New("malformed token")

// SessionToken is a signed HS256 envelope around a random token id. Raw is
// what the client receives and presents on private requests; ID is the
// random part whose SHA-256 digest is persisted. Exp is zero when the token
// does not expire.
type SessionToken struct {
	Raw string
	ID  string
	Exp time.Time
}

// NewSessionToken builds and signs a token for userID. A ttl of zero or less
// produces a token without an exp claim.
func NewSessionToken(secret []byte, userID uint64, ttl time.Duration) (SessionToken, error) {
	id, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return SessionToken{}, err
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:  strconv.FormatUint(userID, 10),
		ID:       id,
		IssuedAt: jwt.NewNumericDate(now),
	}
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Raw: signed, ID: id, Exp: exp}, nil
}

// ParseSessionToken verifies the signature and expiry of raw and returns the
// user id and token id it carries.
func ParseSessionToken(secret []byte, raw string) (uint64, string, error) {
	if raw == "" {
		return 0, "", ErrMalformedToken
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMalformedToken
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !tok.Valid {
		return 0, "", ErrMalformedToken
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 || claims.ID == "" {
		return 0, "", ErrMalformedToken
	}
	return userID, claims.ID, nil
}

// HashTokenID returns the SHA-256 hex digest of a token id. Only this digest
// is written to the database.
func HashTokenID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
