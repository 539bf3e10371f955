package router

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recipe-api/internal/config"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), DisableIdentity: true})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestTagCacheIsPerUserAndInvalidatedOnWrite(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	e := newServerWithRedis(t, rdb, config.RateLimitConfig{}, cacheConfig())

	register(t, e, "a@example.com", "secret1")
	register(t, e, "b@example.com", "secret1")
	ta := login(t, e, "a@example.com", "secret1")
	tb := login(t, e, "b@example.com", "secret1")

	rec := doJSON(t, e, http.MethodPost, "/api/recipe/tags", ta, map[string]string{"name": "Burger"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/recipe/tags", ta, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, []string{"Burger"}, tagNames(t, rec))

	rec = doJSON(t, e, http.MethodGet, "/api/recipe/tags", ta, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, []string{"Burger"}, tagNames(t, rec))
	assert.Len(t, rec.Header().Values(echo.HeaderXRequestID), 1)

	// Same path, different user: never served from A's entry.
	rec = doJSON(t, e, http.MethodGet, "/api/recipe/tags", tb, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, "[]", rec.Body.String())

	keys := mr.Keys()
	require.Len(t, keys, 2)
	for _, k := range keys {
		assert.True(t, strings.HasPrefix(k, "cache:u:"), k)
	}

	rec = doJSON(t, e, http.MethodPost, "/api/recipe/tags", ta, map[string]string{"name": "Pizza"})
	require.Equal(t, http.StatusCreated, rec.Code)
	// Only A's entry was dropped.
	assert.Len(t, mr.Keys(), 1)

	rec = doJSON(t, e, http.MethodGet, "/api/recipe/tags", ta, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, []string{"Pizza", "Burger"}, tagNames(t, rec))

	rec = doJSON(t, e, http.MethodGet, "/api/recipe/tags", tb, nil)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestFailedWriteKeepsCache(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	e := newServerWithRedis(t, rdb, config.RateLimitConfig{}, cacheConfig())

	register(t, e, "a@example.com", "secret1")
	ta := login(t, e, "a@example.com", "secret1")

	rec := doJSON(t, e, http.MethodGet, "/api/recipe/tags", ta, nil)
	require.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	require.Len(t, mr.Keys(), 1)

	rec = doJSON(t, e, http.MethodPost, "/api/recipe/tags", ta, map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, mr.Keys(), 1)
}

func TestRateLimitOnPublicRoutes(t *testing.T) {
	_, rdb := newMiniRedis(t)
	rl := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
	e := newServerWithRedis(t, rdb, rl, config.CacheConfig{})

	body := map[string]string{"email": "nobody@example.com", "password": "secret1"}
	for i := 0; i < 2; i++ {
		rec := doJSON(t, e, http.MethodPost, "/api/user/token", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), rec.Header().Get("X-RateLimit-Remaining"))
	}

	rec := doJSON(t, e, http.MethodPost, "/api/user/token", "", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	secs, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Positive(t, secs)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")

	// Buckets are per route: registration still has its own capacity.
	rec = doJSON(t, e, http.MethodPost, "/api/user/create", "", map[string]string{
		"email": "new@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
