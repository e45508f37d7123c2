package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Catalog
	&Image{},
	&Product{},
	// Inventory
	&StockBatch{},
	// Storefront
	&Cart{},
	&CartItem{},
	&Order{},
	&OrderItem{},
	&ContactMessage{},
}
