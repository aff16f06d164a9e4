package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmaksimov/estore/internal/models"
	"github.com/nmaksimov/estore/internal/transport"
)

func seedOrders(t *testing.T, env *testEnv) (alice, bob *models.User) {
	var err error
	alice, err = env.Users.CreateUser(context.Background(), "alice@example.com", "password")
	require.NoError(t, err)
	bob, err = env.Users.CreateUser(context.Background(), "bob@example.com", "password")
	require.NoError(t, err)

	shirt, mug := seedCatalog(t, env)

	require.NoError(t, env.DB.Create(&models.Order{CreatedByID: alice.ID, ItemID: shirt.ID}).Error)
	require.NoError(t, env.DB.Create(&models.Order{CreatedByID: alice.ID, ItemID: mug.ID}).Error)
	require.NoError(t, env.DB.Create(&models.Order{CreatedByID: bob.ID, ItemID: mug.ID}).Error)
	return alice, bob
}

func TestGetOrdersIsUnscoped(t *testing.T) {
	env := newTestEnv(t)
	seedOrders(t, env)

	rec, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/order", nil)
	require.NoError(t, env.Orders.GetOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Every order comes back, regardless of who asks.
	require.Len(t, resp, 3)
}

func TestGetUserOrders(t *testing.T) {
	env := newTestEnv(t)
	alice, bob := seedOrders(t, env)

	rec, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/orders_list?user_id=1", nil)
	require.NoError(t, env.Orders.GetUserOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	for _, o := range resp {
		require.Equal(t, alice.ID, o.CreatedBy)
		require.NotEqual(t, bob.ID, o.CreatedBy)
	}
}

func TestGetUserOrdersMissingParam(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/orders_list", nil)
	err := env.Orders.GetUserOrders(c)
	require.Error(t, err)
}

func TestGetUserOrdersEmpty(t *testing.T) {
	env := newTestEnv(t)
	seedOrders(t, env)

	rec, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/orders_list?user_id=42", nil)
	require.NoError(t, env.Orders.GetUserOrders(c))

	var resp []transport.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp)
}
