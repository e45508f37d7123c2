package catalog

import (
	"context"
	"strings"

	"github.com/msorganics/organics/internal/domain"
	"gorm.io/gorm"
)

// Repository handles database operations for products and their images.
type Repository interface {
	// ListActive retrieves active products matching term, eager-loading Image
	ListActive(ctx context.Context, term string, limit, offset int) ([]domain.Product, error)

	// CountActive counts active products matching term
	CountActive(ctx context.Context, term string) (int64, error)

	// GetActiveByID retrieves an active product by id, without Image
	GetActiveByID(ctx context.Context, id int64) (*domain.Product, error)

	// GetWithImage retrieves a product by id including its Image
	GetWithImage(ctx context.Context, id int64) (*domain.Product, error)

	// CreateProductWithImage inserts the image and its owning product in
	// one transaction; neither row survives a failure of the other
	CreateProductWithImage(ctx context.Context, img *domain.Image, p *domain.Product) error

	// UpdateImage applies a partial update to an image
	UpdateImage(ctx context.Context, id int64, updates map[string]interface{}) error

	// UpdateProduct applies a partial update to a product
	UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error
}

// GormRepository is the GORM implementation of Repository
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// applySearch adds a case-insensitive substring match over name and
// description. Postgres gets ILIKE, everything else a LOWER LIKE fallback.
func applySearch(db *gorm.DB, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return db
	}
	if strings.EqualFold(db.Name(), "postgres") {
		return db.Where("name ILIKE ? OR description ILIKE ?", "%"+term+"%", "%"+term+"%")
	}
	pattern := "%" + strings.ToLower(term) + "%"
	return db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
}

func (r *GormRepository) ListActive(ctx context.Context, term string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	db := r.db.WithContext(ctx).Model(&domain.Product{}).Where("is_active = ?", true)
	db = applySearch(db, term)
	err := db.Preload("Image").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *GormRepository) CountActive(ctx context.Context, term string) (int64, error) {
	var total int64
	db := r.db.WithContext(ctx).Model(&domain.Product{}).Where("is_active = ?", true)
	db = applySearch(db, term)
	err := db.Count(&total).Error
	return total, err
}

func (r *GormRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) GetWithImage(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Image").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) CreateProductWithImage(ctx context.Context, img *domain.Image, p *domain.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(img).Error; err != nil {
			return err
		}
		p.FkIDImage = img.ID
		return tx.Create(p).Error
	})
}

func (r *GormRepository) UpdateImage(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.Image{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *GormRepository) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}
