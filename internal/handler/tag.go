package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/middleware"
	"github.com/iliyamo/recipe-api/internal/model"
	"github.com/iliyamo/recipe-api/internal/service"
)

// TagHandler serves the caller's tags. The owner always comes from the
// resolved identity; any user field in the body is ignored.
type TagHandler struct {
	Tags *service.TagService
	Log  logging.Logger
}

func NewTagHandler(t *service.TagService, log logging.Logger) *TagHandler {
	return &TagHandler{Tags: t, Log: log}
}

type createTagReq struct {
	Name string `json:"name" form:"name"`
}

type tagResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func toTagResp(t model.Tag) tagResp {
	return tagResp{ID: t.ID, Name: t.Name}
}

// List returns the caller's tags, name descending.
func (h *TagHandler) List(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	tags, err := h.Tags.ListTags(ctx, u)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out := make([]tagResp, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResp(t))
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds a tag owned by the caller.
func (h *TagHandler) Create(c echo.Context) error {
	u, _ := middleware.CurrentUser(c)

	var req createTagReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	t, err := h.Tags.CreateTag(ctx, u, req.Name)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, toTagResp(t))
}
