package middleware

// identity.go holds the context keys TokenAuth writes and the accessors
// handlers and the other middleware use to read them back.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-api/internal/model"
)

const (
	ctxUserKey  = "auth_user"
	ctxTokenKey = "auth_token"
)

// CurrentUser returns the user resolved by TokenAuth.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(ctxUserKey).(model.User)
	return u, ok && u.ID != 0
}

// RawToken returns the session token presented on this request.
func RawToken(c echo.Context) string {
	s, _ := c.Get(ctxTokenKey).(string)
	return s
}

// userID returns the resolved user id as a string, or "anon".
func userID(c echo.Context) string {
	if u, ok := CurrentUser(c); ok {
		return strconv.FormatUint(u.ID, 10)
	}
	return "anon"
}
