package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/middleware"
	"github.com/iliyamo/recipe-api/internal/model"
	"github.com/iliyamo/recipe-api/internal/service"
)

const requestTimeout = 5 * time.Second

// UserHandler serves account registration, token issue and the
// authenticated account endpoints.
type UserHandler struct {
	Accounts *service.AccountService
	Auth     *service.AuthService
	Log      logging.Logger
}

func NewUserHandler(a *service.AccountService, auth *service.AuthService, log logging.Logger) *UserHandler {
	return &UserHandler{Accounts: a, Auth: auth, Log: log}
}

// ----- DTOs -----

type createUserReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

type tokenReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type userResp struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenResp struct {
	Token string `json:"token"`
}

func toUserResp(u model.User) userResp {
	return userResp{ID: u.ID, Email: u.Email, Name: u.Name}
}

// Create registers a new account. The password is never echoed back.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	u, err := h.Accounts.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, toUserResp(u))
}

// Token exchanges credentials for a session token. Bad credentials are a
// 400 here, not a 401, and the body carries no token field.
func (h *UserHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	tok, _, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		var ae *service.AuthenticationError
		if errors.As(err, &ae) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ae.Message})
		}
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, tokenResp{Token: tok})
}

// Me returns the caller's account.
func (h *UserHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication credentials were not provided"})
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// Logout revokes the token the request was made with.
func (h *UserHandler) Logout(c echo.Context) error {
	raw := middleware.RawToken(c)
	if raw == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication credentials were not provided"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.Auth.Revoke(ctx, raw); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// LogoutAll revokes every token issued to the caller, including the one the
// request was made with.
func (h *UserHandler) LogoutAll(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication credentials were not provided"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	if err := h.Auth.RevokeAll(ctx, u.ID); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
