package usecase

import (
	"context"
	"net/http"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"
)

type CartUsecase struct {
	carts        repo.CartRepository
	cartItems    repo.CartItemRepository
	products     repo.ProductRepository
	productSizes repo.ProductSizeRepository
	sizes        repo.SizeRepository
}

// DI
func NewCartUsecase(
	carts repo.CartRepository,
	cartItems repo.CartItemRepository,
	products repo.ProductRepository,
	productSizes repo.ProductSizeRepository,
	sizes repo.SizeRepository,
) *CartUsecase {
	return &CartUsecase{
		carts:        carts,
		cartItems:    cartItems,
		products:     products,
		productSizes: productSizes,
		sizes:        sizes,
	}
}

type AddCartItemInput struct {
	ProductID int64 `json:"product_id"`
	SizeID    int64 `json:"size_id"`
	Quantity  int64 `json:"quantity"`
}

// priceは追加時点のスナップショット
type CartItemDTO struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Thumbnail   string `json:"thumbnail"`
	SizeID      int64  `json:"size_id"`
	SizeName    string `json:"size_name"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

type CartOutput struct {
	CartID int64         `json:"cart_id"`
	Items  []CartItemDTO `json:"items"`
	Total  int64         `json:"total"`
}

// GetCart はカートの中身を返す。カート無しは登録フローの不整合なので404。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	cart, err := u.carts.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartOutput(ctx, cart.ID)
}

// AddItem はカートに追加。(product, size) が同じ明細は数量加算で1行に保つ。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartItemInput) (CartOutput, error) {
	if in.ProductID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.SizeID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid size_id")
	}
	if in.Quantity < 1 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
	}

	cart, err := u.carts.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//商品チェック（公開のみ）
	p, err := u.products.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.Status != model.ProductStatusActive {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "product is not available")
	}

	//サイズの取り扱いチェック
	if _, err := u.productSizes.FindByProductAndSize(ctx, in.ProductID, in.SizeID); err != nil {
		if err == repo.ErrNotFound {
			return CartOutput{}, NewHTTPError(http.StatusBadRequest, "size is not available for this product")
		}
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing, err := u.cartItems.FindByCartProductSize(ctx, cart.ID, in.ProductID, in.SizeID)
	switch {
	case err == nil:
		//同じ(product, size)は数量加算
		if err := u.cartItems.AddQuantity(ctx, existing.ID, in.Quantity); err != nil {
			return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	case err == repo.ErrNotFound:
		_, err := u.cartItems.Create(ctx, model.CartItem{
			CartID:    cart.ID,
			ProductID: in.ProductID,
			SizeID:    in.SizeID,
			Quantity:  in.Quantity,
			Price:     p.Price,
		})
		if err != nil {
			return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	default:
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartOutput(ctx, cart.ID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartOutput, error) {
	cart, item, err := u.findOwnedItem(ctx, userID, cartItemID)
	if err != nil {
		return CartOutput{}, err
	}

	if err := u.cartItems.DeleteByID(ctx, item.ID); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartOutput(ctx, cart.ID)
}

// Clear はカートを空にする。空のカートに対しても成功扱い。
func (u *CartUsecase) Clear(ctx context.Context, userID int64) (CartOutput, error) {
	cart, err := u.carts.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartOutput{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItems.DeleteByCartID(ctx, cart.ID); err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartOutput(ctx, cart.ID)
}

func (u *CartUsecase) findOwnedItem(ctx context.Context, userID int64, cartItemID int64) (model.Cart, model.CartItem, error) {
	if cartItemID <= 0 {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	cart, err := u.carts.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItems.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//他人の明細への操作は権限エラー
	if item.CartID != cart.ID {
		return model.Cart{}, model.CartItem{}, NewHTTPError(http.StatusForbidden, "cannot modify another user's cart item")
	}
	return cart, item, nil
}

func (u *CartUsecase) buildCartOutput(ctx context.Context, cartID int64) (CartOutput, error) {
	items, err := u.cartItems.ListByCartID(ctx, cartID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]CartItemDTO, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		dto := CartItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			SizeID:    it.SizeID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
		if p, err := u.products.FindByID(ctx, it.ProductID); err == nil {
			dto.ProductName = p.Name
			dto.Thumbnail = p.Thumbnail
		}
		if s, err := u.sizes.FindByID(ctx, it.SizeID); err == nil {
			dto.SizeName = s.Name
		}
		dtos = append(dtos, dto)
		total += it.Price * it.Quantity
	}

	return CartOutput{CartID: cartID, Items: dtos, Total: total}, nil
}
