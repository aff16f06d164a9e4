package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nmaksimov/estore/internal/repo"
	"github.com/nmaksimov/estore/internal/transport"
)

type OrderHandler struct {
	Repo *repo.GormRepo
}

// GetOrders returns every order regardless of the requester. The missing
// per-user filter is a ported behavior, kept until product decides
// otherwise.
func (h *OrderHandler) GetOrders(c echo.Context) error {
	orders, err := h.Repo.ListOrders(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.OrdersToResponse(orders))
}

// GetUserOrders filters by the supplied user_id, not the caller's identity.
func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	userID, err := strconv.Atoi(c.QueryParam("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id required")
	}

	orders, err := h.Repo.ListOrdersByUser(c.Request().Context(), uint(userID))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.OrdersToResponse(orders))
}
