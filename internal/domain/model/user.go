package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// 会員。通常フローでは物理削除しない（statusで無効化）。
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	PhoneNumber  string     `gorm:"type:varchar(30)" json:"phone_number"`
	Gender       string     `gorm:"type:varchar(10);not null;default:'OTHER'" json:"gender"`
	Address      string     `gorm:"type:varchar(255)" json:"address"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
