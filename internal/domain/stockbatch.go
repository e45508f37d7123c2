package domain

import "time"

// StockBatch is a production lot of a product. The batch code is minted
// once at creation and never regenerated, even if the dates change later.
// Unlike Product, stock batches are hard-deleted.
type StockBatch struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FkIDProduct       int64     `gorm:"index" json:"fk_id_product" form:"fk_id_product"`
	QuantityProduced  float64   `json:"quantity_produced" form:"quantity_produced"`
	QuantityAllocated float64   `json:"quantity_allocated" form:"quantity_allocated"`
	StartDate         time.Time `gorm:"index" json:"start_date" form:"start_date"`
	EndDate           time.Time `gorm:"index" json:"end_date" form:"end_date"`
	PricePerKg        float64   `json:"price_per_kg" form:"price_per_kg"`
	BatchCode         string    `gorm:"size:64;index" json:"batch_code"`
	IsActive          bool      `gorm:"default:true" json:"is_active" form:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName Specify table name
func (StockBatch) TableName() string {
	return "stock_batch"
}
