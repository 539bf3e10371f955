package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/service"
)

// writeError maps service errors onto HTTP responses. Anything that is not a
// typed service error is logged and reported as 500 without detail.
func writeError(c echo.Context, log logging.Logger, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		body := echo.Map{"error": ve.Message}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		return c.JSON(http.StatusBadRequest, body)
	}
	var ae *service.AuthenticationError
	if errors.As(err, &ae) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": ae.Message})
	}
	log.Error(c.Request().Context(), "request failed",
		"method", c.Request().Method, "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
}
