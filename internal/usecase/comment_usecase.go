package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"
)

type CommentUsecase struct {
	comments repo.CommentRepository
	products repo.ProductRepository
	users    repo.UserRepository
}

// DI
func NewCommentUsecase(
	comments repo.CommentRepository,
	products repo.ProductRepository,
	users repo.UserRepository,
) *CommentUsecase {
	return &CommentUsecase{comments: comments, products: products, users: users}
}

type CreateCommentInput struct {
	ProductID int64  `json:"product_id"`
	Content   string `json:"content"`
}

type SaveCommentInput struct {
	Content string `json:"content"`
}

type CommentDTO struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *CommentUsecase) Create(ctx context.Context, userID int64, in CreateCommentInput) (CommentDTO, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return CommentDTO{}, NewHTTPError(http.StatusBadRequest, "content is required")
	}
	if len(content) > 1000 {
		return CommentDTO{}, NewHTTPError(http.StatusBadRequest, "content is too long")
	}
	if in.ProductID <= 0 {
		return CommentDTO{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if _, err := u.products.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return CommentDTO{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return CommentDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.comments.Create(ctx, model.Comment{
		ProductID: in.ProductID,
		UserID:    userID,
		Content:   content,
	})
	if err != nil {
		return CommentDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.toDTO(ctx, c), nil
}

func (u *CommentUsecase) ListByProduct(ctx context.Context, productID int64) ([]CommentDTO, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	rows, err := u.comments.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]CommentDTO, 0, len(rows))
	for _, c := range rows {
		dtos = append(dtos, u.toDTO(ctx, c))
	}
	return dtos, nil
}

// Update はコメント本人のみ。
func (u *CommentUsecase) Update(ctx context.Context, callerID int64, commentID int64, in SaveCommentInput) (CommentDTO, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return CommentDTO{}, NewHTTPError(http.StatusBadRequest, "content is required")
	}

	c, err := u.comments.FindByID(ctx, commentID)
	if err == repo.ErrNotFound {
		return CommentDTO{}, NewHTTPError(http.StatusNotFound, "comment not found")
	}
	if err != nil {
		return CommentDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if c.UserID != callerID {
		return CommentDTO{}, NewHTTPError(http.StatusForbidden, "cannot edit another user's comment")
	}

	c.Content = content
	if err := u.comments.Update(ctx, c); err != nil {
		return CommentDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.toDTO(ctx, c), nil
}

// Delete は本人または管理者。
func (u *CommentUsecase) Delete(ctx context.Context, callerID int64, callerRole model.Role, commentID int64) error {
	c, err := u.comments.FindByID(ctx, commentID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "comment not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if c.UserID != callerID && callerRole != model.RoleAdmin {
		return NewHTTPError(http.StatusForbidden, "cannot delete another user's comment")
	}

	if err := u.comments.Delete(ctx, commentID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CommentUsecase) toDTO(ctx context.Context, c model.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        c.ID,
		ProductID: c.ProductID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if user, err := u.users.FindByID(ctx, c.UserID); err == nil {
		dto.UserName = user.FullName
	}
	return dto
}
