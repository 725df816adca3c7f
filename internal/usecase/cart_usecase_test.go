package usecase

import (
	"context"
	"net/http"
	"testing"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecaseForTest() (*CartUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock, *ProductSizeRepoMock, *SizeRepoMock) {
	carts := new(CartRepoMock)
	cartItems := new(CartItemRepoMock)
	products := new(ProductRepoMock)
	productSizes := new(ProductSizeRepoMock)
	sizes := new(SizeRepoMock)
	uc := NewCartUsecase(carts, cartItems, products, productSizes, sizes)
	return uc, carts, cartItems, products, productSizes, sizes
}

func TestCartUsecase_AddItem_MergesDuplicateLine(t *testing.T) {
	uc, carts, cartItems, products, productSizes, sizes := newCartUsecaseForTest()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(7)).Return(model.Cart{ID: 50, UserID: 7}, nil)
	products.On("FindByID", ctx, int64(1)).Return(model.Product{ID: 1, Name: "Tee", Price: 1500, Status: model.ProductStatusActive}, nil)
	productSizes.On("FindByProductAndSize", ctx, int64(1), int64(2)).Return(model.ProductSize{ID: 10}, nil)
	//既に数量2の明細がある
	cartItems.On("FindByCartProductSize", ctx, int64(50), int64(1), int64(2)).
		Return(model.CartItem{ID: 99, CartID: 50, ProductID: 1, SizeID: 2, Quantity: 2, Price: 1500}, nil)
	cartItems.On("AddQuantity", ctx, int64(99), int64(3)).Return(nil)
	cartItems.On("ListByCartID", ctx, int64(50)).
		Return([]model.CartItem{{ID: 99, CartID: 50, ProductID: 1, SizeID: 2, Quantity: 5, Price: 1500}}, nil)
	sizes.On("FindByID", ctx, int64(2)).Return(model.Size{ID: 2, Name: "M"}, nil)

	out, err := uc.AddItem(ctx, 7, AddCartItemInput{ProductID: 1, SizeID: 2, Quantity: 3})

	assert.NoError(t, err)
	//2 + 3 = 5 が1行になる
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.Equal(t, int64(7500), out.Total)
	cartItems.AssertCalled(t, "AddQuantity", ctx, int64(99), int64(3))
	cartItems.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartUsecase_AddItem_CreatesNewLineWithPriceSnapshot(t *testing.T) {
	uc, carts, cartItems, products, productSizes, sizes := newCartUsecaseForTest()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(7)).Return(model.Cart{ID: 50, UserID: 7}, nil)
	products.On("FindByID", ctx, int64(1)).Return(model.Product{ID: 1, Name: "Tee", Price: 1500, Status: model.ProductStatusActive}, nil)
	productSizes.On("FindByProductAndSize", ctx, int64(1), int64(2)).Return(model.ProductSize{ID: 10}, nil)
	cartItems.On("FindByCartProductSize", ctx, int64(50), int64(1), int64(2)).Return(model.CartItem{}, repo.ErrNotFound)
	cartItems.On("Create", ctx, mock.MatchedBy(func(item model.CartItem) bool {
		//追加時点の商品価格がスナップショットされる
		return item.CartID == 50 && item.Price == 1500 && item.Quantity == 2
	})).Return(model.CartItem{ID: 99, CartID: 50, ProductID: 1, SizeID: 2, Quantity: 2, Price: 1500}, nil)
	cartItems.On("ListByCartID", ctx, int64(50)).
		Return([]model.CartItem{{ID: 99, CartID: 50, ProductID: 1, SizeID: 2, Quantity: 2, Price: 1500}}, nil)
	sizes.On("FindByID", ctx, int64(2)).Return(model.Size{ID: 2, Name: "M"}, nil)

	out, err := uc.AddItem(ctx, 7, AddCartItemInput{ProductID: 1, SizeID: 2, Quantity: 2})

	assert.NoError(t, err)
	assert.Equal(t, int64(3000), out.Total)
}

func TestCartUsecase_AddItem_InactiveProductRejected(t *testing.T) {
	uc, carts, _, products, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(7)).Return(model.Cart{ID: 50}, nil)
	products.On("FindByID", ctx, int64(1)).Return(model.Product{ID: 1, Status: model.ProductStatusInactive}, nil)

	_, err := uc.AddItem(ctx, 7, AddCartItemInput{ProductID: 1, SizeID: 2, Quantity: 1})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_AddItem_UnknownSizeRejected(t *testing.T) {
	uc, carts, _, products, productSizes, _ := newCartUsecaseForTest()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(7)).Return(model.Cart{ID: 50}, nil)
	products.On("FindByID", ctx, int64(1)).Return(model.Product{ID: 1, Status: model.ProductStatusActive}, nil)
	productSizes.On("FindByProductAndSize", ctx, int64(1), int64(9)).Return(model.ProductSize{}, repo.ErrNotFound)

	_, err := uc.AddItem(ctx, 7, AddCartItemInput{ProductID: 1, SizeID: 9, Quantity: 1})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_RemoveItem_OtherUsersItemForbidden(t *testing.T) {
	uc, carts, cartItems, _, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(7)).Return(model.Cart{ID: 50, UserID: 7}, nil)
	//明細は別ユーザーのカートのもの
	cartItems.On("FindByID", ctx, int64(99)).Return(model.CartItem{ID: 99, CartID: 51}, nil)

	_, err := uc.RemoveItem(ctx, 7, 99)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
	cartItems.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestCartUsecase_RemoveItem_Success(t *testing.T) {
	uc, carts, cartItems, _, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(7)).Return(model.Cart{ID: 50, UserID: 7}, nil)
	cartItems.On("FindByID", ctx, int64(99)).Return(model.CartItem{ID: 99, CartID: 50}, nil)
	cartItems.On("DeleteByID", ctx, int64(99)).Return(nil)
	cartItems.On("ListByCartID", ctx, int64(50)).Return([]model.CartItem{}, nil)

	out, err := uc.RemoveItem(ctx, 7, 99)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)
}

func TestCartUsecase_Clear_DeletesAllLines(t *testing.T) {
	uc, carts, cartItems, _, _, _ := newCartUsecaseForTest()
	ctx := context.Background()

	carts.On("FindByUserID", ctx, int64(7)).Return(model.Cart{ID: 50, UserID: 7}, nil)
	cartItems.On("DeleteByCartID", ctx, int64(50)).Return(nil)
	cartItems.On("ListByCartID", ctx, int64(50)).Return([]model.CartItem{}, nil)

	out, err := uc.Clear(ctx, 7)

	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	cartItems.AssertCalled(t, "DeleteByCartID", ctx, int64(50))
}
