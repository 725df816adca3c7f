package model

// (product, size) ごとの在庫カウンタ。常に stock >= 0。
type ProductSize struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_product_size" json:"product_id"`
	SizeID    int64 `gorm:"not null;uniqueIndex:idx_product_size" json:"size_id"`
	Stock     int64 `gorm:"not null;default:0" json:"stock"`
}
