package usecase

import (
	"context"
	"net/http"
	"strings"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"
)

// 保存済みメッセージの配信口。チャットのHubが実装する。
// 配信はベストエフォート（切断中の相手には届かないだけ）。
type MessagePublisher interface {
	PublishToUser(userID int64, m model.Message)
}

type MessageUsecase struct {
	messages  repo.MessageRepository
	users     repo.UserRepository
	publisher MessagePublisher
}

// DI
func NewMessageUsecase(
	messages repo.MessageRepository,
	users repo.UserRepository,
	publisher MessagePublisher,
) *MessageUsecase {
	return &MessageUsecase{messages: messages, users: users, publisher: publisher}
}

type SendMessageInput struct {
	ReceiverUserID int64  `json:"receiver_user_id"`
	Content        string `json:"content"`
}

// SendMessage は保存してから送信者・受信者の両トピックへ配る。
// 自分のトピックにも流すことで、送信者の別タブ/別端末も同期される。
func (u *MessageUsecase) SendMessage(ctx context.Context, senderID int64, in SendMessageInput) (model.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, "content is required")
	}
	if in.ReceiverUserID <= 0 {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, "invalid receiver_user_id")
	}
	if in.ReceiverUserID == senderID {
		return model.Message{}, NewHTTPError(http.StatusBadRequest, "cannot send message to yourself")
	}

	if _, err := u.users.FindByID(ctx, in.ReceiverUserID); err != nil {
		if err == repo.ErrNotFound {
			return model.Message{}, NewHTTPError(http.StatusNotFound, "receiver not found")
		}
		return model.Message{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	m, err := u.messages.Create(ctx, model.Message{
		SenderUserID:   senderID,
		ReceiverUserID: in.ReceiverUserID,
		Content:        content,
		IsRead:         false,
	})
	if err != nil {
		return model.Message{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//保存成功後にのみ配信する
	u.publisher.PublishToUser(m.ReceiverUserID, m)
	u.publisher.PublishToUser(m.SenderUserID, m)

	return m, nil
}

// GetConversation は2者間の履歴を古い順に返すだけ。既読化はMarkReadで明示的に行う。
func (u *MessageUsecase) GetConversation(ctx context.Context, userID int64, otherUserID int64) ([]model.Message, error) {
	if otherUserID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if _, err := u.users.FindByID(ctx, otherUserID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "user not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	msgs, err := u.messages.FindConversation(ctx, userID, otherUserID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return msgs, nil
}

// MarkRead は相手からの未読メッセージをまとめて既読にする。
func (u *MessageUsecase) MarkRead(ctx context.Context, userID int64, otherUserID int64) (int64, error) {
	if otherUserID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	n, err := u.messages.MarkReadBetween(ctx, otherUserID, userID)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return n, nil
}

// ListChatUsers はやり取りのある相手の一覧（管理画面のチャット一覧用）。
func (u *MessageUsecase) ListChatUsers(ctx context.Context, userID int64) ([]repo.ChatUser, error) {
	rows, err := u.messages.FindDistinctChatUsers(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}
