package model

import "time"

// チャットメッセージ。is_read以外は不変（false -> true のみ）。
type Message struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderUserID   int64     `gorm:"not null;index" json:"sender_user_id"`
	ReceiverUserID int64     `gorm:"not null;index" json:"receiver_user_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
