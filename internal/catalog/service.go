package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/msorganics/organics/internal/domain"
	"github.com/msorganics/organics/pkg/rest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements the catalog operations: listing, counting, creating
// and partially updating products, and soft-deleting them. Products are
// only ever deactivated, never removed.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreatePayload carries the required fields for product creation.
type CreatePayload struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	ImageName      string  `json:"image_name"`
	ImageSourceURL string  `json:"image_source_url"`
	PricePerKg     float64 `json:"price_per_kg"`
}

// UpdatePayload carries optional fields for a partial product update.
// Nil fields are left untouched.
type UpdatePayload struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	ImageName      *string  `json:"image_name"`
	ImageSourceURL *string  `json:"image_source_url"`
	PricePerKg     *float64 `json:"price_per_kg"`
	IsActive       *bool    `json:"is_active"`
}

// Fetch returns active products whose name or description contains term.
// An empty term matches everything. No upper bound is enforced on limit.
func (s *Service) Fetch(ctx context.Context, term string, limit, offset int) ([]domain.Product, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	products, err := s.repo.ListActive(ctx, term, limit, offset)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of active products matching term, using the
// same filter as Fetch.
func (s *Service) Count(ctx context.Context, term string) (int64, error) {
	return s.repo.CountActive(ctx, term)
}

// Create validates the payload, then creates the image record and the
// product referencing it in a single transaction.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (*domain.Product, error) {
	if strings.TrimSpace(payload.Name) == "" {
		return nil, rest.BadRequest("Product name is required")
	}
	if strings.TrimSpace(payload.Description) == "" {
		return nil, rest.BadRequest("Product description is required")
	}
	if strings.TrimSpace(payload.ImageName) == "" {
		return nil, rest.BadRequest("Image name is required")
	}
	if strings.TrimSpace(payload.ImageSourceURL) == "" {
		return nil, rest.BadRequest("Image source_url is required")
	}
	if payload.PricePerKg <= 0 {
		return nil, rest.BadRequest("Valid price_per_kg is required")
	}

	img := domain.Image{
		Name:      payload.ImageName,
		SourceURL: payload.ImageSourceURL,
	}
	p := domain.Product{
		Name:        payload.Name,
		Description: payload.Description,
		PricePerKg:  payload.PricePerKg,
		IsActive:    true,
	}
	if err := s.repo.CreateProductWithImage(ctx, &img, &p); err != nil {
		return nil, err
	}

	zap.L().Info("product created",
		zap.Int64("id", p.ID),
		zap.String("name", p.Name))

	// Image is intentionally not expanded on the create response.
	return &p, nil
}

// UpdateByID applies a partial update to an active product. Non-empty
// image fields update the linked image in place. The batch of product
// fields {name, description, price_per_kg, is_active} is applied only for
// values present in the payload.
func (s *Service) UpdateByID(ctx context.Context, id int64, payload UpdatePayload) (*domain.Product, error) {
	existing, err := s.repo.GetActiveByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rest.BadRequest("Product not found")
	} else if err != nil {
		return nil, err
	}

	if payload.PricePerKg != nil && *payload.PricePerKg <= 0 {
		return nil, rest.BadRequest("price_per_kg must be greater than 0")
	}

	imageUpdates := map[string]interface{}{}
	if payload.ImageName != nil && strings.TrimSpace(*payload.ImageName) != "" {
		imageUpdates["name"] = *payload.ImageName
	}
	if payload.ImageSourceURL != nil && strings.TrimSpace(*payload.ImageSourceURL) != "" {
		imageUpdates["source_url"] = *payload.ImageSourceURL
	}
	if len(imageUpdates) > 0 {
		imageUpdates["updated_at"] = time.Now()
		if err := s.repo.UpdateImage(ctx, existing.FkIDImage, imageUpdates); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.PricePerKg != nil {
		updates["price_per_kg"] = *payload.PricePerKg
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.repo.GetWithImage(ctx, id)
}

// SoftDeleteByID deactivates an active product. A product that is already
// inactive counts as not found, so a second call fails.
func (s *Service) SoftDeleteByID(ctx context.Context, id int64) (*domain.Product, error) {
	_, err := s.repo.GetActiveByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rest.BadRequest("Product not found or already inactive")
	} else if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now(),
	}
	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		return nil, err
	}

	zap.L().Info("product deactivated", zap.Int64("id", id))

	return s.repo.GetWithImage(ctx, id)
}
