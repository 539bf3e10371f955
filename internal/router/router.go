// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-api/internal/handler"
)

// RegisterRoutes registers routes that need no authentication and sit
// outside the API prefix.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterUser registers the account endpoints under /api/user. Registration
// and token issue are public and pass through limiter; me and the logout
// routes require a session token.
func RegisterUser(e *echo.Echo, u *handler.UserHandler, auth, limiter echo.MiddlewareFunc) {
	g := e.Group("/api/user")
	g.POST("/create", u.Create, limiter)
	g.POST("/token", u.Token, limiter)

	g.GET("/me", u.Me, auth)
	g.POST("/logout", u.Logout, auth)
	g.POST("/logout/all", u.LogoutAll, auth)
}

// RegisterRecipe registers the recipe resources under /api/recipe. Every
// route requires a session token. cache runs after auth so entries are keyed
// by the resolved user.
func RegisterRecipe(e *echo.Echo, t *handler.TagHandler, auth, cache echo.MiddlewareFunc) {
	g := e.Group("/api/recipe", auth, cache)
	g.GET("/tags", t.List)
	g.POST("/tags", t.Create)
}
