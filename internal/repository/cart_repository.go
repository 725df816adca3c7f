package repository

import (
	"context"

	"stylestore/internal/domain/model"
)

// カートは会員登録時に作成される。存在しなければErrNotFound。
type CartRepository interface {
	Create(ctx context.Context, cart model.Cart) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
}
