package usecase

import (
	"context"
	"net/http"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"
)

// カテゴリとサイズのマスタ管理。
type CatalogUsecase struct {
	categories repo.CategoryRepository
	sizes      repo.SizeRepository
}

// DI
func NewCatalogUsecase(categories repo.CategoryRepository, sizes repo.SizeRepository) *CatalogUsecase {
	return &CatalogUsecase{categories: categories, sizes: sizes}
}

type SaveCategoryInput struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type SaveSizeInput struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ListActiveCategories は公開側のカテゴリ一覧。
func (u *CatalogUsecase) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := u.categories.ListByStatus(ctx, model.CategoryStatusActive)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// ListAllCategories は管理側の一覧（INACTIVE含む）。
func (u *CatalogUsecase) ListAllCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := u.categories.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *CatalogUsecase) CreateCategory(ctx context.Context, in SaveCategoryInput) (model.Category, error) {
	if in.Name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	c, err := u.categories.Create(ctx, model.Category{
		Name:   in.Name,
		Status: categoryStatusOrActive(in.Status),
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CatalogUsecase) UpdateCategory(ctx context.Context, id int64, in SaveCategoryInput) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Name == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	c := model.Category{ID: id, Name: in.Name, Status: categoryStatusOrActive(in.Status)}
	if err := u.categories.Update(ctx, c); err != nil {
		if err == repo.ErrNotFound {
			return model.Category{}, NewHTTPError(http.StatusNotFound, "category not found")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CatalogUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.categories.Delete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "category not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CatalogUsecase) ListSizes(ctx context.Context) ([]model.Size, error) {
	rows, err := u.sizes.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *CatalogUsecase) CreateSize(ctx context.Context, in SaveSizeInput) (model.Size, error) {
	if in.Name == "" {
		return model.Size{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	s, err := u.sizes.Create(ctx, model.Size{
		Name:   in.Name,
		Status: sizeStatusOrActive(in.Status),
	})
	if err != nil {
		return model.Size{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *CatalogUsecase) UpdateSize(ctx context.Context, id int64, in SaveSizeInput) (model.Size, error) {
	if id <= 0 {
		return model.Size{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Name == "" {
		return model.Size{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	s := model.Size{ID: id, Name: in.Name, Status: sizeStatusOrActive(in.Status)}
	if err := u.sizes.Update(ctx, s); err != nil {
		if err == repo.ErrNotFound {
			return model.Size{}, NewHTTPError(http.StatusNotFound, "size not found")
		}
		return model.Size{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *CatalogUsecase) DeleteSize(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.sizes.Delete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "size not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func categoryStatusOrActive(s string) model.CategoryStatus {
	if model.CategoryStatus(s) == model.CategoryStatusInactive {
		return model.CategoryStatusInactive
	}
	return model.CategoryStatusActive
}

func sizeStatusOrActive(s string) model.SizeStatus {
	if model.SizeStatus(s) == model.SizeStatusInactive {
		return model.SizeStatusInactive
	}
	return model.SizeStatusActive
}
