package domain

import "time"

// Order status lifecycle: PLACED -> CUSTOMER_CONFIRMED -> CONFIRMED, any
// non-cancelled status may move to CANCELLED by an admin.
const (
	OrderStatusPlaced            = "PLACED"
	OrderStatusCustomerConfirmed = "CUSTOMER_CONFIRMED"
	OrderStatusConfirmed         = "CONFIRMED"
	OrderStatusCancelled         = "CANCELLED"
)

type Order struct {
	ID             int64       `gorm:"primaryKey" json:"id,string"`
	OrderUniqueID  string      `gorm:"size:64;uniqueIndex" json:"order_unique_id"`
	FkIDCart       int64       `gorm:"index" json:"fk_id_cart"`
	CustomerName   string      `json:"customer_name"`
	CustomerEmail  string      `json:"customer_email"`
	CustomerMobile string      `json:"customer_mobile"`
	Status         string      `gorm:"size:32;index" json:"status"`
	DeliveryDate   time.Time   `gorm:"index" json:"delivery_date"`
	Items          []OrderItem `gorm:"foreignKey:FkIDOrder" json:"items,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "customer_order"
}

type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FkIDOrder   int64     `gorm:"index" json:"fk_id_order"`
	FkIDProduct int64     `gorm:"index" json:"fk_id_product"`
	Product     *Product  `gorm:"foreignKey:FkIDProduct" json:"product,omitempty"`
	QuantityKg  float64   `json:"quantity_kg"`
	PricePerKg  float64   `json:"price_per_kg"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "customer_order_item"
}
