package repository

import (
	"context"

	"stylestore/internal/domain/model"
)

// 会員の保存・取得を約束。
type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user model.User) error
	List(ctx context.Context, page int, size int) ([]model.User, int64, error)
	Count(ctx context.Context) (int64, error)
}
