package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nmaksimov/estore/internal/auth"
	"github.com/nmaksimov/estore/internal/repo"
)

// httpError maps domain errors onto HTTP statuses at the handler boundary.
// Anything unrecognized becomes a generic 500 with no internal detail.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, auth.ErrValidation), errors.Is(err, repo.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrToken):
		return echo.NewHTTPError(http.StatusBadRequest, "token is expired or invalid")
	case errors.Is(err, auth.ErrAuthenticationFailed):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials, try again")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
