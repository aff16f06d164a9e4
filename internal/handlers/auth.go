package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nmaksimov/estore/internal/auth"
	"github.com/nmaksimov/estore/internal/logging"
	"github.com/nmaksimov/estore/internal/mykafka"
	"github.com/nmaksimov/estore/internal/transport"
)

type AuthHandler struct {
	Users    *auth.UserService
	Tokens   *auth.TokenService
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := req.Validate(); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return httpError(err)
	}

	user, err := h.Users.CreateUser(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("register_error", "error", err)
		return httpError(err)
	}

	h.publish(c, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("register_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	user, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		l.Error("login_error", "error", err)
		return httpError(err)
	}
	if user == nil {
		// Uniform failure: unknown email and wrong password are
		// indistinguishable to the caller.
		l.Warn("login_failed", "status", 401)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials, try again")
	}

	pair, err := h.Tokens.IssueTokens(ctx, user)
	if err != nil {
		l.Error("login_error", "error", err)
		return httpError(err)
	}

	h.publish(c, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	var req transport.LogoutRequest
	if err := c.Bind(&req); err != nil || req.Refresh == "" {
		l.Warn("logout_error", "status", 400)
		return echo.NewHTTPError(http.StatusBadRequest, "refresh token required")
	}

	if err := h.Tokens.InvalidateToken(ctx, req.Refresh); err != nil {
		l.Warn("logout_error", "status", 400, "error", err)
		return httpError(err)
	}

	l.Info("logout_success")
	return c.NoContent(http.StatusNoContent)
}
