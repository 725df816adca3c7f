package repository

import (
	"context"

	"stylestore/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, c model.Comment) (model.Comment, error)
	FindByID(ctx context.Context, id int64) (model.Comment, error)
	ListByProductID(ctx context.Context, productID int64) ([]model.Comment, error)
	Update(ctx context.Context, c model.Comment) error
	Delete(ctx context.Context, id int64) error
}
