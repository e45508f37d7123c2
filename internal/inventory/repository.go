package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/msorganics/organics/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository is the slice of the catalog the inventory service
// needs: product existence checks at batch creation time.
type ProductRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Product, error)
}

// BatchFilter carries the optional fetch filters. Nil fields are not
// applied. OnlyActive nil or true restricts to active batches; an explicit
// false drops the active-flag filter entirely.
type BatchFilter struct {
	BatchCode     string
	ProductIDs    []int64
	FromStartDate *time.Time
	ToStartDate   *time.Time
	FromEndDate   *time.Time
	ToEndDate     *time.Time
	OnlyActive    *bool
}

// Repository handles database operations for stock batches.
type Repository interface {
	// List retrieves batches matching filter ordered by end_date ascending
	List(ctx context.Context, filter BatchFilter, limit, offset int) ([]domain.StockBatch, error)

	// Count counts batches matching filter
	Count(ctx context.Context, filter BatchFilter) (int64, error)

	// GetActiveByID retrieves an active batch by id
	GetActiveByID(ctx context.Context, id int64) (*domain.StockBatch, error)

	// GetByID retrieves a batch by id regardless of its active flag
	GetByID(ctx context.Context, id int64) (*domain.StockBatch, error)

	// Create inserts a new batch record
	Create(ctx context.Context, batch *domain.StockBatch) error

	// Update applies a partial update to a batch
	Update(ctx context.Context, id int64, updates map[string]interface{}) error

	// Delete permanently removes a batch record
	Delete(ctx context.Context, id int64) error
}

// GormRepository is the GORM implementation of Repository
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) applyFilter(ctx context.Context, filter BatchFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&domain.StockBatch{})

	if filter.OnlyActive == nil || *filter.OnlyActive {
		db = db.Where("is_active = ?", true)
	}
	if code := strings.TrimSpace(filter.BatchCode); code != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("batch_code ILIKE ?", "%"+code+"%")
		} else {
			db = db.Where("LOWER(batch_code) LIKE ?", "%"+strings.ToLower(code)+"%")
		}
	}
	if len(filter.ProductIDs) > 0 {
		db = db.Where("fk_id_product IN ?", filter.ProductIDs)
	}
	if filter.FromStartDate != nil {
		db = db.Where("start_date >= ?", *filter.FromStartDate)
	}
	if filter.ToStartDate != nil {
		db = db.Where("start_date <= ?", *filter.ToStartDate)
	}
	if filter.FromEndDate != nil {
		db = db.Where("end_date >= ?", *filter.FromEndDate)
	}
	if filter.ToEndDate != nil {
		db = db.Where("end_date <= ?", *filter.ToEndDate)
	}
	return db
}

func (r *GormRepository) List(ctx context.Context, filter BatchFilter, limit, offset int) ([]domain.StockBatch, error) {
	var batches []domain.StockBatch
	err := r.applyFilter(ctx, filter).
		Order("end_date ASC").
		Offset(offset).
		Limit(limit).
		Find(&batches).Error
	return batches, err
}

func (r *GormRepository) Count(ctx context.Context, filter BatchFilter) (int64, error) {
	var total int64
	err := r.applyFilter(ctx, filter).Count(&total).Error
	return total, err
}

func (r *GormRepository) GetActiveByID(ctx context.Context, id int64) (*domain.StockBatch, error) {
	var batch domain.StockBatch
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*domain.StockBatch, error) {
	var batch domain.StockBatch
	err := r.db.WithContext(ctx).First(&batch, id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *GormRepository) Create(ctx context.Context, batch *domain.StockBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *GormRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.StockBatch{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *GormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.StockBatch{}, id).Error
}
