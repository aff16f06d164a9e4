package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nmaksimov/estore/internal/models"
)

func (r *GormRepo) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	item := models.Item{}
	if err := r.DB.WithContext(ctx).
		Preload("Category").Preload("Rating").Preload("Review").
		Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// likeEscaper neutralizes LIKE metacharacters so the query is matched
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchItems is a case-insensitive substring match against the item name
// or its category name, unioned. No tokenization, no ranking.
func (r *GormRepo) SearchItems(ctx context.Context, q string) ([]models.Item, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"

	var items []models.Item
	if err := r.DB.WithContext(ctx).
		Preload("Category").Preload("Rating").Preload("Review").
		Joins("JOIN categories ON categories.id = items.category_id").
		Where(`LOWER(items.name) LIKE ? ESCAPE '\' OR LOWER(categories.name) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("items.id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, item.CategoryID).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	item.Category = category
	return item, nil
}

type ItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *uint
	RatingID    *uint
	ReviewID    *uint
	VariantID   *uint
}

func (r *GormRepo) PatchItem(ctx context.Context, id uint, patch ItemPatch) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.CategoryID != nil {
		item.CategoryID = *patch.CategoryID
	}
	if patch.RatingID != nil {
		item.RatingID = patch.RatingID
	}
	if patch.ReviewID != nil {
		item.ReviewID = patch.ReviewID
	}
	if patch.VariantID != nil {
		item.VariantID = patch.VariantID
	}

	if err := r.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return r.GetItem(ctx, item.ID)
}

func (r *GormRepo) DeleteItem(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

// CreateRating enforces the [0, 5] range at write time.
func (r *GormRepo) CreateRating(ctx context.Context, rating *models.Rating) error {
	if rating.Rating < 0.0 || rating.Rating > 5.0 {
		return fmt.Errorf("%w: rating must be between 0.0 and 5.0, got %v", ErrValidation, rating.Rating)
	}
	return r.DB.WithContext(ctx).Create(rating).Error
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}
