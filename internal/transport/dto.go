package transport

import (
	"fmt"
	"time"

	"github.com/nmaksimov/estore/internal/auth"
	"github.com/nmaksimov/estore/internal/models"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Validate runs the declarative field rules before any domain object is
// constructed.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email must not be empty", auth.ErrValidation)
	}
	if r.Password != r.Password2 {
		return fmt.Errorf("%w: password and confirm password should match", auth.ErrValidation)
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" || r.Password == "" {
		return fmt.Errorf("%w: email and password are required", auth.ErrValidation)
	}
	return nil
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type CreateItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"category"`
}

func (r *CreateItemRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name must not be empty", auth.ErrValidation)
	}
	if r.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", auth.ErrValidation)
	}
	if r.CategoryID == 0 {
		return fmt.Errorf("%w: category is required", auth.ErrValidation)
	}
	return nil
}

type PatchItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category"`
	RatingID    *uint    `json:"ratings"`
	ReviewID    *uint    `json:"reviews"`
	VariantID   *uint    `json:"variants"`
}

func (r *PatchItemRequest) Validate() error {
	if r.Price != nil && *r.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", auth.ErrValidation)
	}
	if r.Name != nil && *r.Name == "" {
		return fmt.Errorf("%w: name must not be empty", auth.ErrValidation)
	}
	return nil
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateRatingRequest struct {
	Rating float64 `json:"rating"`
}

type CreateReviewRequest struct {
	Review string `json:"review"`
}

// ItemResponse is the wire shape of an item, including the derived
// avg_rating and all_reviews attributes.
type ItemResponse struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	AvgRating   *float64 `json:"avg_rating"`
	AllReviews  []string `json:"all_reviews"`
	VariantID   *uint    `json:"variants"`
}

func ItemToResponse(item *models.Item) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category.Name,
		AllReviews:  []string{},
		VariantID:   item.VariantID,
	}
	// The item references at most one rating row, so the average collapses
	// to that row's value.
	if item.Rating != nil {
		v := item.Rating.Rating
		resp.AvgRating = &v
	}
	if item.Review != nil {
		resp.AllReviews = append(resp.AllReviews, item.Review.Review)
	}
	return resp
}

func ItemsToResponse(items []models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ItemToResponse(&items[i]))
	}
	return out
}

type OrderResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy uint      `json:"created_by"`
	Item      uint      `json:"item"`
}

func OrdersToResponse(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderResponse{
			ID:        o.ID,
			CreatedAt: o.CreatedAt,
			CreatedBy: o.CreatedByID,
			Item:      o.ItemID,
		})
	}
	return out
}
