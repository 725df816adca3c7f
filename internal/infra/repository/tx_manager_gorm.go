package repository

import (
	"context"

	repo "stylestore/internal/repository"

	"gorm.io/gorm"
)

// *gorm.DBのTransactionに委譲するTransactionManager実装。
// fnがerrorを返せば自動rollback、nilならcommit。
type GormTransactionManager struct {
	db *gorm.DB
}

// DI
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

func (m *GormTransactionManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTxRepos{tx: tx})
	})
}

// Tx内の各Repositoryは同じ*gorm.DB(=tx)を共有する。
type gormTxRepos struct {
	tx *gorm.DB
}

func (r *gormTxRepos) Orders() repo.OrderRepository {
	return NewOrderGormRepository(r.tx)
}

func (r *gormTxRepos) OrderItems() repo.OrderItemRepository {
	return NewOrderItemGormRepository(r.tx)
}

func (r *gormTxRepos) Products() repo.ProductRepository {
	return NewProductGormRepository(r.tx)
}

func (r *gormTxRepos) ProductSizes() repo.ProductSizeRepository {
	return NewProductSizeGormRepository(r.tx)
}

func (r *gormTxRepos) Carts() repo.CartRepository {
	return NewCartGormRepository(r.tx)
}

func (r *gormTxRepos) CartItems() repo.CartItemRepository {
	return NewCartItemGormRepository(r.tx)
}

func (r *gormTxRepos) Users() repo.UserRepository {
	return NewUserGormRepository(r.tx)
}

func (r *gormTxRepos) Sizes() repo.SizeRepository {
	return NewSizeGormRepository(r.tx)
}
