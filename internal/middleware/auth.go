package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/recipe-api/internal/model"
	"github.com/iliyamo/recipe-api/internal/service"
)

// TokenResolver maps a raw session token to the user it was issued to.
type TokenResolver interface {
	Resolve(ctx context.Context, raw string) (model.User, error)
}

// TokenAuth returns an Echo middleware that requires a session token in the
// Authorization header ("Token <t>" or "Bearer <t>"), resolves it and stores
// the user and the raw token in the request context. Handlers read them with
// CurrentUser and RawToken.
func TokenAuth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := tokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication credentials were not provided"})
			}

			u, err := resolver.Resolve(c.Request().Context(), raw)
			if err != nil {
				var ae *service.AuthenticationError
				if errors.As(err, &ae) {
					c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Token")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": ae.Message})
				}
				c.Logger().Errorf("resolve token: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}

			c.Set(ctxUserKey, u)
			c.Set(ctxTokenKey, raw)
			return next(c)
		}
	}
}

// tokenFromHeader accepts the "Token" scheme existing clients send
// and the more common "Bearer" scheme, case-insensitively.
func tokenFromHeader(h string) (string, bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(rest)
	return raw, raw != ""
}
