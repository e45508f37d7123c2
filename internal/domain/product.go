package domain

import "time"

// Image is owned by exactly one Product and is created alongside it. It is
// never created independently by the public API surface.
type Image struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `json:"name" form:"name"`
	SourceURL string    `gorm:"size:1024" json:"source_url" form:"source_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Image) TableName() string {
	return "image"
}

// Product represents a catalog item sold by weight. Products are never
// hard-deleted: is_active=false excludes them from all default queries.
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `gorm:"size:2048" json:"description" form:"description"`
	PricePerKg  float64   `json:"price_per_kg" form:"price_per_kg"`
	IsActive    bool      `gorm:"default:true" json:"is_active" form:"is_active"`
	FkIDImage   int64     `gorm:"index" json:"fk_id_image"`
	Image       *Image    `gorm:"foreignKey:FkIDImage" json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}
