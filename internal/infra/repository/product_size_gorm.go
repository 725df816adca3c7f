package repository

import (
	"context"
	"errors"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"

	"gorm.io/gorm"
)

type ProductSizeGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductSizeGormRepository(db *gorm.DB) *ProductSizeGormRepository {
	return &ProductSizeGormRepository{db: db}
}

func (r *ProductSizeGormRepository) ListByProductID(ctx context.Context, productID int64) ([]model.ProductSize, error) {
	var rows []model.ProductSize
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("size_id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ProductSizeGormRepository) FindByProductAndSize(ctx context.Context, productID int64, sizeID int64) (model.ProductSize, error) {
	var ps model.ProductSize
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND size_id = ?", productID, sizeID).
		First(&ps).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductSize{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductSize{}, err
	}
	return ps, nil
}

func (r *ProductSizeGormRepository) CreateBulk(ctx context.Context, rows []model.ProductSize) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// 在庫が足りるときだけ減らす。条件付きUPDATE1文なので
// 同じ在庫への同時注文でもマイナスにはならない。
func (r *ProductSizeGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, sizeID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProductSize{}).
		Where("product_id = ? AND size_id = ? AND stock >= ?", productID, sizeID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

func (r *ProductSizeGormRepository) SetStock(ctx context.Context, productSizeID int64, stock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProductSize{}).
		Where("id = ?", productSizeID).
		Update("stock", stock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
