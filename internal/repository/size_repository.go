package repository

import (
	"context"

	"stylestore/internal/domain/model"
)

type SizeRepository interface {
	List(ctx context.Context) ([]model.Size, error)
	FindByID(ctx context.Context, id int64) (model.Size, error)
	Create(ctx context.Context, s model.Size) (model.Size, error)
	Update(ctx context.Context, s model.Size) error
	Delete(ctx context.Context, id int64) error
}
