package model

import "time"

// カート明細。(cart, product, size) で1行、重複追加は数量加算。
// priceは追加時点の価格スナップショット。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;uniqueIndex:idx_cart_product_size" json:"cart_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_product_size" json:"product_id"`
	SizeID    int64     `gorm:"not null;uniqueIndex:idx_cart_product_size" json:"size_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
