package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly must run after RequireLogin. Authorization is all-or-nothing:
// the admin flag grants everything.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isAdmin, _ := c.Get("isAdmin").(bool)
		if !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights")
		}
		return next(c)
	}
}
