package model

import "time"

type SizeStatus string

const (
	SizeStatusActive   SizeStatus = "ACTIVE"
	SizeStatusInactive SizeStatus = "INACTIVE"
)

// サイズ（参照マスタ）。商品作成時に全サイズ分のProductSizeを作る。
type Size struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"type:varchar(50);not null" json:"name"`
	Status    SizeStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
