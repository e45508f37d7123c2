package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/msorganics/organics/internal/domain"
	"github.com/msorganics/organics/pkg/rest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxLimitPerPage caps the effective page size of batch listings.
const MaxLimitPerPage = 100

// Service implements the stock batch operations. Batches reference an
// active product, carry a production window and an immutable batch code,
// and are hard-deleted (unlike products).
type Service struct {
	repo     Repository
	products ProductRepository
}

func NewService(repo Repository, products ProductRepository) *Service {
	return &Service{repo: repo, products: products}
}

// CreatePayload carries the required fields for batch creation.
type CreatePayload struct {
	FkIDProduct      int64     `json:"fk_id_product"`
	QuantityProduced float64   `json:"quantity_produced"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	PricePerKg       float64   `json:"price_per_kg"`
}

// UpdatePayload carries optional fields for a partial batch update. The
// batch code is never touched here.
type UpdatePayload struct {
	FkIDProduct       *int64     `json:"fk_id_product"`
	QuantityProduced  *float64   `json:"quantity_produced"`
	QuantityAllocated *float64   `json:"quantity_allocated"`
	EndDate           *time.Time `json:"end_date"`
	IsActive          *bool      `json:"is_active"`
}

// Pagination describes the window a fetch result covers.
type Pagination struct {
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	HasNextPage bool  `json:"hasNextPage"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

// FetchResult is the payload of a batch listing.
type FetchResult struct {
	Batches    []domain.StockBatch `json:"batches"`
	Pagination Pagination          `json:"pagination"`
}

// Fetch returns batches matching filter ordered by end date, along with a
// pagination block. The effective limit is clamped to MaxLimitPerPage; a
// negative limit or offset falls back to the defaults.
func (s *Service) Fetch(ctx context.Context, filter BatchFilter, limit, offset *int) (*FetchResult, error) {
	take := MaxLimitPerPage
	if limit != nil && *limit >= 0 && *limit < MaxLimitPerPage {
		take = *limit
	}
	skip := 0
	if offset != nil && *offset >= 0 {
		skip = *offset
	}

	batches, err := s.repo.List(ctx, filter, take, skip)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	pagination := Pagination{
		TotalCount:  total,
		Limit:       take,
		Offset:      skip,
		HasNextPage: int64(skip+take) < total,
	}
	if take > 0 {
		pagination.CurrentPage = skip/take + 1
		pagination.TotalPages = int((total + int64(take) - 1) / int64(take))
	}

	return &FetchResult{Batches: batches, Pagination: pagination}, nil
}

// Create validates the parent product and the production window, mints the
// batch code and inserts the batch with nothing allocated yet.
func (s *Service) Create(ctx context.Context, payload CreatePayload) (*domain.StockBatch, error) {
	_, err := s.products.GetActiveByID(ctx, payload.FkIDProduct)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rest.BadRequest("Product not found")
	} else if err != nil {
		return nil, err
	}

	if payload.QuantityProduced <= 0 {
		return nil, rest.BadRequest("Quantity produced must be greater than 0")
	}
	if !payload.StartDate.Before(payload.EndDate) {
		return nil, rest.BadRequest("Start date must be before end date")
	}

	batch := domain.StockBatch{
		FkIDProduct:       payload.FkIDProduct,
		QuantityProduced:  payload.QuantityProduced,
		QuantityAllocated: 0,
		StartDate:         payload.StartDate,
		EndDate:           payload.EndDate,
		PricePerKg:        payload.PricePerKg,
		BatchCode:         GenerateBatchCode(payload.FkIDProduct, payload.StartDate, payload.EndDate),
		IsActive:          true,
	}
	if err := s.repo.Create(ctx, &batch); err != nil {
		return nil, err
	}

	zap.L().Info("stock batch created",
		zap.Int64("id", batch.ID),
		zap.Int64("product_id", batch.FkIDProduct),
		zap.String("batch_code", batch.BatchCode))

	return &batch, nil
}

// UpdateByID applies a partial update to an active batch. A supplied end
// date may not precede the stored start date. The batch code is never
// regenerated, even when the window changes.
func (s *Service) UpdateByID(ctx context.Context, id int64, payload UpdatePayload) (*domain.StockBatch, error) {
	existing, err := s.repo.GetActiveByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rest.BadRequest("Stock batch not found")
	} else if err != nil {
		return nil, err
	}

	if payload.QuantityProduced != nil && *payload.QuantityProduced <= 0 {
		return nil, rest.BadRequest("Quantity produced must be greater than 0")
	}
	if payload.EndDate != nil && payload.EndDate.Before(existing.StartDate) {
		return nil, rest.BadRequest("End date must be after start date")
	}

	updates := map[string]interface{}{}
	if payload.FkIDProduct != nil {
		updates["fk_id_product"] = *payload.FkIDProduct
	}
	if payload.QuantityProduced != nil {
		updates["quantity_produced"] = *payload.QuantityProduced
	}
	if payload.QuantityAllocated != nil {
		updates["quantity_allocated"] = *payload.QuantityAllocated
	}
	if payload.EndDate != nil {
		updates["end_date"] = *payload.EndDate
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.repo.GetByID(ctx, id)
}

// DeleteByID permanently removes an active batch and returns its id.
func (s *Service) DeleteByID(ctx context.Context, id int64) (int64, error) {
	_, err := s.repo.GetActiveByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, rest.BadRequest("Stock batch not found")
	} else if err != nil {
		return 0, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, err
	}

	zap.L().Info("stock batch deleted", zap.Int64("id", id))

	return id, nil
}
