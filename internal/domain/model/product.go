package model

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// カタログの商品。サイズ別在庫はProductSizeが持つ。
type Product struct {
	ID          int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string        `gorm:"type:varchar(100);not null" json:"name"`
	Description string        `gorm:"type:varchar(500)" json:"description"`
	Gender      string        `gorm:"type:varchar(20);not null" json:"gender"`
	Brand       string        `gorm:"type:varchar(100)" json:"brand"`
	Price       int64         `gorm:"not null" json:"price"`
	Thumbnail   string        `gorm:"type:varchar(255)" json:"thumbnail"`
	Status      ProductStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CategoryID  int64         `gorm:"not null;index" json:"category_id"`
	CreatedAt   time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
