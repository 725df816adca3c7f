package repository

import (
	"context"

	"stylestore/internal/domain/model"
)

// チャット相手の一覧用
type ChatUser struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type MessageRepository interface {
	Create(ctx context.Context, m model.Message) (model.Message, error)
	// 2者間の全メッセージをcreated_at昇順で返す
	FindConversation(ctx context.Context, userID int64, otherUserID int64) ([]model.Message, error)
	// sender=other, receiver=reader の未読をまとめて既読化。更新件数を返す。
	MarkReadBetween(ctx context.Context, otherUserID int64, readerID int64) (int64, error)
	// 自分とやり取りのある相手の一覧
	FindDistinctChatUsers(ctx context.Context, userID int64) ([]ChatUser, error)
}
