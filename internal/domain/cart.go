package domain

import "time"

// Cart is an anonymous shopping cart addressed by its public unique id.
type Cart struct {
	ID             int64      `gorm:"primaryKey" json:"id,string"`
	CartUniqueID   string     `gorm:"size:64;uniqueIndex" json:"cart_unique_id"`
	CustomerName   string     `json:"customer_name" form:"customer_name"`
	CustomerEmail  string     `json:"customer_email" form:"customer_email"`
	CustomerMobile string     `json:"customer_mobile" form:"customer_mobile"`
	Items          []CartItem `gorm:"foreignKey:FkIDCart" json:"items,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Cart) TableName() string {
	return "cart"
}

type CartItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FkIDCart    int64     `gorm:"index" json:"fk_id_cart"`
	FkIDProduct int64     `gorm:"index" json:"fk_id_product" form:"fk_id_product"`
	Product     *Product  `gorm:"foreignKey:FkIDProduct" json:"product,omitempty"`
	QuantityKg  float64   `json:"quantity_kg" form:"quantity_kg"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CartItem) TableName() string {
	return "cart_item"
}
