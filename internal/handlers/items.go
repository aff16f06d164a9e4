package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nmaksimov/estore/internal/repo"
	"github.com/nmaksimov/estore/internal/transport"
)

type ItemHandler struct {
	Repo *repo.GormRepo
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := h.Repo.GetItem(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.ItemToResponse(item))
}

// GetItems lists items matched by the `q` substring filter. Without `q` the
// result set is empty.
func (h *ItemHandler) GetItems(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusOK, []transport.ItemResponse{})
	}

	items, err := h.Repo.SearchItems(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.ItemsToResponse(items))
}
