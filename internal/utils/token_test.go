package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_GenerateAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := NewSessionToken(secret, 42, time.Hour)
	require.NoError(t, err)
	assert.Len(t, tok.ID, 96)
	assert.False(t, tok.Exp.IsZero())

	uid, id, err := ParseSessionToken(secret, tok.Raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
	assert.Equal(t, tok.ID, id)
}

func TestSessionToken_NoExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := NewSessionToken(secret, 7, 0)
	require.NoError(t, err)
	assert.True(t, tok.Exp.IsZero())

	_, _, err = ParseSessionToken(secret, tok.Raw)
	require.NoError(t, err)
}

func TestParseSessionToken_Rejects(t *testing.T) {
	t.Parallel()

	secret := []byte("right-secret")
	good, err := NewSessionToken(secret, 1, time.Hour)
	require.NoError(t, err)
	expired, err := NewSessionToken(secret, 1, -time.Second)
	require.NoError(t, err)

	other, err := NewSessionToken(secret, 2, time.Hour)
	require.NoError(t, err)
	gp, op := strings.Split(good.Raw, "."), strings.Split(other.Raw, ".")
	tampered := gp[0] + "." + op[1] + "." + gp[2]

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: "abc"}).SignedString(secret)
	require.NoError(t, err)
	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"}).SignedString(secret)
	require.NoError(t, err)

	cases := map[string]struct {
		secret []byte
		raw    string
	}{
		"empty":        {secret, ""},
		"garbage":      {secret, "not.a.jwt"},
		"wrong secret": {[]byte("wrong-secret"), good.Raw},
		"expired":      {secret, expired.Raw},
		"tampered":     {secret, tampered},
		"no subject":   {secret, noSubject},
		"no id":        {secret, noID},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseSessionToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestHashTokenID(t *testing.T) {
	h := HashTokenID("abc")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashTokenID("abc"))
	assert.NotEqual(t, h, HashTokenID("abd"))
}
