package usecase

import (
	"context"
	"net/http"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"
)

type ProductUsecase struct {
	tx           repo.TransactionManager
	products     repo.ProductRepository
	productSizes repo.ProductSizeRepository
	categories   repo.CategoryRepository
	sizes        repo.SizeRepository
}

// DI
func NewProductUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	productSizes repo.ProductSizeRepository,
	categories repo.CategoryRepository,
	sizes repo.SizeRepository,
) *ProductUsecase {
	return &ProductUsecase{
		tx:           tx,
		products:     products,
		productSizes: productSizes,
		categories:   categories,
		sizes:        sizes,
	}
}

type ProductListInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	//trueなら全status（管理者用）
	IncludeInactive bool
}

type ProductSizeDTO struct {
	SizeID   int64  `json:"size_id"`
	SizeName string `json:"size_name"`
	Stock    int64  `json:"stock"`
}

type ProductDTO struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Gender      string           `json:"gender"`
	Brand       string           `json:"brand"`
	Price       int64            `json:"price"`
	Thumbnail   string           `json:"thumbnail"`
	Status      string           `json:"status"`
	CategoryID  int64            `json:"category_id"`
	Sizes       []ProductSizeDTO `json:"sizes,omitempty"`
}

type ProductListOutput struct {
	Products   []ProductDTO `json:"products"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int64        `json:"total_pages"`
}

type ProductSizeInput struct {
	SizeID int64 `json:"size_id"`
	Stock  int64 `json:"stock"`
}

type SaveProductInput struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Gender      string             `json:"gender"`
	Brand       string             `json:"brand"`
	Price       int64              `json:"price"`
	Thumbnail   string             `json:"thumbnail"`
	Status      string             `json:"status"`
	CategoryID  int64              `json:"category_id"`
	Sizes       []ProductSizeInput `json:"sizes"`
}

// UpdateProductInput は部分更新。nilのフィールドは現在値を保持する。
type UpdateProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Gender      *string `json:"gender"`
	Brand       *string `json:"brand"`
	Price       *int64  `json:"price"`
	Thumbnail   *string `json:"thumbnail"`
	Status      *string `json:"status"`
	CategoryID  *int64  `json:"category_id"`
}

type SetStockInput struct {
	SizeID int64 `json:"size_id"`
	Stock  int64 `json:"stock"`
}

func toProductDTO(p model.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Gender:      p.Gender,
		Brand:       p.Brand,
		Price:       p.Price,
		Thumbnail:   p.Thumbnail,
		Status:      string(p.Status),
		CategoryID:  p.CategoryID,
	}
}

func (u *ProductUsecase) List(ctx context.Context, in ProductListInput) (ProductListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 12
	}

	q := repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          in.Q,
		CategoryID: in.CategoryID,
	}
	if !in.IncludeInactive {
		q.Status = model.ProductStatusActive
	}

	items, total, err := u.products.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]ProductDTO, 0, len(items))
	for _, p := range items {
		dtos = append(dtos, toProductDTO(p))
	}

	return ProductListOutput{
		Products:   dtos,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: (total + int64(in.Limit) - 1) / int64(in.Limit),
	}, nil
}

// Get は商品詳細。サイズ別在庫も一緒に返す。
func (u *ProductUsecase) Get(ctx context.Context, productID int64) (ProductDTO, error) {
	if productID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductDTO{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toProductDTO(p)
	dto.Sizes, err = u.sizeDTOs(ctx, p.ID)
	if err != nil {
		return ProductDTO{}, err
	}
	return dto, nil
}

// Create は商品登録。全サイズ分のProductSize行を一緒に作り、
// 初期在庫はリクエストのsizesで指定する（指定のないサイズは0）。
func (u *ProductUsecase) Create(ctx context.Context, in SaveProductInput) (ProductDTO, error) {
	if err := validateSaveProduct(in); err != nil {
		return ProductDTO{}, err
	}

	stocks := make(map[int64]int64, len(in.Sizes))
	for _, s := range in.Sizes {
		if s.SizeID <= 0 {
			return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid size_id")
		}
		if s.Stock < 0 {
			return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "stock must not be negative")
		}
		stocks[s.SizeID] = s.Stock
	}

	var out ProductDTO

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		sizes, err := r.Sizes().List(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		known := make(map[int64]bool, len(sizes))
		for _, s := range sizes {
			known[s.ID] = true
		}
		for sizeID := range stocks {
			if !known[sizeID] {
				return NewHTTPError(http.StatusBadRequest, "unknown size_id")
			}
		}

		p, err := r.Products().Create(ctx, model.Product{
			Name:        in.Name,
			Description: in.Description,
			Gender:      in.Gender,
			Brand:       in.Brand,
			Price:       in.Price,
			Thumbnail:   in.Thumbnail,
			Status:      productStatusOrActive(in.Status),
			CategoryID:  in.CategoryID,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		rows := make([]model.ProductSize, 0, len(sizes))
		for _, s := range sizes {
			rows = append(rows, model.ProductSize{
				ProductID: p.ID,
				SizeID:    s.ID,
				Stock:     stocks[s.ID],
			})
		}
		if err := r.ProductSizes().CreateBulk(ctx, rows); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toProductDTO(p)
		return nil
	})

	if err != nil {
		return ProductDTO{}, err
	}
	return out, nil
}

// Update は部分更新。送られてきたフィールドだけ上書きする。
func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) (ProductDTO, error) {
	if productID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductDTO{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Thumbnail != nil {
		p.Thumbnail = *in.Thumbnail
	}
	if in.Status != nil {
		p.Status = productStatusOrActive(*in.Status)
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}

	if p.Name == "" {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if p.Price < 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	if p.CategoryID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "category_id is required")
	}

	if err := u.products.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return ProductDTO{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductDTO(p), nil
}

func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.products.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetStock は管理者の在庫設定（上書き）。
func (u *ProductUsecase) SetStock(ctx context.Context, productID int64, in SetStockInput) (ProductDTO, error) {
	if productID <= 0 || in.SizeID <= 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Stock < 0 {
		return ProductDTO{}, NewHTTPError(http.StatusBadRequest, "stock must not be negative")
	}

	ps, err := u.productSizes.FindByProductAndSize(ctx, productID, in.SizeID)
	if err == repo.ErrNotFound {
		return ProductDTO{}, NewHTTPError(http.StatusNotFound, "product size not found")
	}
	if err != nil {
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productSizes.SetStock(ctx, ps.ID, in.Stock); err != nil {
		return ProductDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.Get(ctx, productID)
}

func (u *ProductUsecase) sizeDTOs(ctx context.Context, productID int64) ([]ProductSizeDTO, error) {
	rows, err := u.productSizes.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]ProductSizeDTO, 0, len(rows))
	for _, ps := range rows {
		dto := ProductSizeDTO{SizeID: ps.SizeID, Stock: ps.Stock}
		if s, err := u.sizes.FindByID(ctx, ps.SizeID); err == nil {
			dto.SizeName = s.Name
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

func validateSaveProduct(in SaveProductInput) error {
	if in.Name == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "category_id is required")
	}
	return nil
}

func productStatusOrActive(s string) model.ProductStatus {
	if model.ProductStatus(s) == model.ProductStatusInactive {
		return model.ProductStatusInactive
	}
	return model.ProductStatusActive
}
