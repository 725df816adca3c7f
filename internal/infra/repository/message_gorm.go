package repository

import (
	"context"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"

	"gorm.io/gorm"
)

type MessageGormRepository struct {
	db *gorm.DB
}

// DI
func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) Create(ctx context.Context, m model.Message) (model.Message, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Message{}, err
	}
	return m, nil
}

func (r *MessageGormRepository) FindConversation(ctx context.Context, userID int64, otherUserID int64) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_user_id = ? AND receiver_user_id = ?) OR (sender_user_id = ? AND receiver_user_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at asc").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// 冪等。既に既読なら0件更新で返る。
func (r *MessageGormRepository) MarkReadBetween(ctx context.Context, otherUserID int64, readerID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_user_id = ? AND receiver_user_id = ? AND is_read = ?", otherUserID, readerID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *MessageGormRepository) FindDistinctChatUsers(ctx context.Context, userID int64) ([]repo.ChatUser, error) {
	var users []repo.ChatUser
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT u.id, u.full_name, u.email
		FROM users u
		JOIN messages m
		  ON (m.sender_user_id = u.id AND m.receiver_user_id = ?)
		  OR (m.receiver_user_id = u.id AND m.sender_user_id = ?)
		ORDER BY u.id`, userID, userID).
		Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
