package repository

import (
	"context"

	"stylestore/internal/domain/model"
)

// (product, size) 別の在庫カウンタの約束。
type ProductSizeRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductSize, error)
	FindByProductAndSize(ctx context.Context, productID int64, sizeID int64) (model.ProductSize, error)
	CreateBulk(ctx context.Context, rows []model.ProductSize) error

	// 在庫が足りるときだけ減らす（足りなければfalse）。
	// UPDATE ... SET stock = stock - ? WHERE ... AND stock >= ? の1文で行う。
	DecreaseStockIfEnough(ctx context.Context, productID int64, sizeID int64, qty int64) (bool, error)

	// 管理者の在庫設定（負数は呼び出し側で弾く）
	SetStock(ctx context.Context, productSizeID int64, stock int64) error
}
