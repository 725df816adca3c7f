package repository

import (
	"context"

	"stylestore/internal/domain/model"
)

// 管理者一覧のページング条件
type AdminOrderListFilter struct {
	Page    int
	Size    int
	SortBy  string // created_at / total_amount / status / id
	SortDir string // asc / desc
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	Create(ctx context.Context, order model.Order) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Count(ctx context.Context) (int64, error)
}
