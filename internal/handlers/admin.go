package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nmaksimov/estore/internal/logging"
	"github.com/nmaksimov/estore/internal/models"
	"github.com/nmaksimov/estore/internal/mykafka"
	"github.com/nmaksimov/estore/internal/repo"
	"github.com/nmaksimov/estore/internal/transport"
)

// AdminHandler owns the catalog write endpoints. Routes are gated by the
// admin middleware.
type AdminHandler struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (h *AdminHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "catalog_events", fmt.Sprint(event["itemID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AdminHandler) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_create_item")

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("create_item_error", "status", 400, "error", err)
		return httpError(err)
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}

	item, err := h.Repo.CreateItem(ctx, item)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "category does not exist")
		}
		l.Error("create_item_error", "error", err)
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":   "item_created",
		"itemID": item.ID,
		"name":   item.Name,
	})

	l.Info("create_item_success", "itemID", item.ID)
	return c.JSON(http.StatusCreated, transport.ItemToResponse(item))
}

func (h *AdminHandler) PatchItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_patch_item")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return httpError(err)
	}

	item, err := h.Repo.PatchItem(ctx, uint(id), repo.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		RatingID:    req.RatingID,
		ReviewID:    req.ReviewID,
		VariantID:   req.VariantID,
	})
	if err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":   "item_updated",
		"itemID": item.ID,
		"name":   item.Name,
	})

	l.Info("patch_item_success", "itemID", item.ID)
	return c.JSON(http.StatusOK, transport.ItemToResponse(item))
}

func (h *AdminHandler) DeleteItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Repo.DeleteItem(c.Request().Context(), uint(id)); err != nil {
		return httpError(err)
	}

	h.publish(c, map[string]any{
		"type":   "item_deleted",
		"itemID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name required")
	}

	category := &models.Category{Name: req.Name}
	if err := h.Repo.CreateCategory(c.Request().Context(), category); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *AdminHandler) CreateRating(c echo.Context) error {
	var req transport.CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	userID, _ := c.Get("userID").(uint)
	rating := &models.Rating{Rating: req.Rating, CreatedByID: userID}
	if err := h.Repo.CreateRating(c.Request().Context(), rating); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rating)
}

func (h *AdminHandler) CreateReview(c echo.Context) error {
	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil || req.Review == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "review required")
	}

	review := &models.Review{Review: req.Review}
	if err := h.Repo.CreateReview(c.Request().Context(), review); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, review)
}
