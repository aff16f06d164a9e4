package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nmaksimov/estore/internal/auth"
	"github.com/nmaksimov/estore/internal/config"
	"github.com/nmaksimov/estore/internal/repo"
)

type testEnv struct {
	E      *echo.Echo
	DB     *gorm.DB
	Users  *auth.UserService
	Tokens *auth.TokenService
	Auth   *AuthHandler
	Items  *ItemHandler
	Orders *OrderHandler
	Admin  *AdminHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	users := &auth.UserService{DB: db}
	tokens := &auth.TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	store := repo.New(db)

	return &testEnv{
		E:      echo.New(),
		DB:     db,
		Users:  users,
		Tokens: tokens,
		Auth:   &AuthHandler{Users: users, Tokens: tokens},
		Items:  &ItemHandler{Repo: store},
		Orders: &OrderHandler{Repo: store},
		Admin:  &AdminHandler{Repo: store},
	}
}

func (env *testEnv) doJSONRequest(t *testing.T, method, target string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}
