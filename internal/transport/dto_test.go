package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nmaksimov/estore/internal/auth"
	"github.com/nmaksimov/estore/internal/models"
)

func TestRegisterRequestValidate(t *testing.T) {
	ok := RegisterRequest{Email: "a@b.c", Password: "x", Password2: "x"}
	require.NoError(t, ok.Validate())

	mismatch := RegisterRequest{Email: "a@b.c", Password: "x", Password2: "y"}
	require.ErrorIs(t, mismatch.Validate(), auth.ErrValidation)

	empty := RegisterRequest{Password: "x", Password2: "x"}
	require.ErrorIs(t, empty.Validate(), auth.ErrValidation)
}

func TestCreateItemRequestValidate(t *testing.T) {
	ok := CreateItemRequest{Name: "Mug", Price: 4.5, CategoryID: 1}
	require.NoError(t, ok.Validate())

	negative := CreateItemRequest{Name: "Mug", Price: -4.5, CategoryID: 1}
	require.ErrorIs(t, negative.Validate(), auth.ErrValidation)

	noCategory := CreateItemRequest{Name: "Mug", Price: 4.5}
	require.ErrorIs(t, noCategory.Validate(), auth.ErrValidation)
}

func TestItemToResponse(t *testing.T) {
	item := models.Item{
		ID:       1,
		Name:     "Red Shirt",
		Price:    19.99,
		Category: models.Category{Name: "Apparel"},
	}

	resp := ItemToResponse(&item)
	require.Equal(t, "Apparel", resp.Category)
	require.Nil(t, resp.AvgRating)
	require.NotNil(t, resp.AllReviews)
	require.Empty(t, resp.AllReviews)

	item.Rating = &models.Rating{Rating: 4.0}
	item.Review = &models.Review{Review: "good"}
	resp = ItemToResponse(&item)
	require.Equal(t, 4.0, *resp.AvgRating)
	require.Equal(t, []string{"good"}, resp.AllReviews)
}
