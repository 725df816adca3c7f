package usecase

import (
	"context"
	"time"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) List(ctx context.Context, page int, size int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, size)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type ProductSizeRepoMock struct{ mock.Mock }

func (m *ProductSizeRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.ProductSize, error) {
	args := m.Called(ctx, productID)
	rows, _ := args.Get(0).([]model.ProductSize)
	return rows, args.Error(1)
}

func (m *ProductSizeRepoMock) FindByProductAndSize(ctx context.Context, productID int64, sizeID int64) (model.ProductSize, error) {
	args := m.Called(ctx, productID, sizeID)
	ps, _ := args.Get(0).(model.ProductSize)
	return ps, args.Error(1)
}

func (m *ProductSizeRepoMock) CreateBulk(ctx context.Context, rows []model.ProductSize) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *ProductSizeRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, sizeID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, sizeID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *ProductSizeRepoMock) SetStock(ctx context.Context, productSizeID int64, stock int64) error {
	args := m.Called(ctx, productSizeID, stock)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]model.Category)
	return rows, args.Error(1)
}

func (m *CategoryRepoMock) ListByStatus(ctx context.Context, status model.CategoryStatus) ([]model.Category, error) {
	args := m.Called(ctx, status)
	rows, _ := args.Get(0).([]model.Category)
	return rows, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type SizeRepoMock struct{ mock.Mock }

func (m *SizeRepoMock) List(ctx context.Context) ([]model.Size, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]model.Size)
	return rows, args.Error(1)
}

func (m *SizeRepoMock) FindByID(ctx context.Context, id int64) (model.Size, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Size)
	return s, args.Error(1)
}

func (m *SizeRepoMock) Create(ctx context.Context, s model.Size) (model.Size, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Size)
	return created, args.Error(1)
}

func (m *SizeRepoMock) Update(ctx context.Context, s model.Size) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SizeRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Create(ctx context.Context, cart model.Cart) (model.Cart, error) {
	args := m.Called(ctx, cart)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartProductSize(ctx context.Context, cartID, productID, sizeID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID, sizeID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.CartItem)
	return created, args.Error(1)
}

func (m *CartItemRepoMock) AddQuantity(ctx context.Context, cartItemID int64, addQty int64) error {
	args := m.Called(ctx, cartItemID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByCartID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type MessageRepoMock struct{ mock.Mock }

func (m *MessageRepoMock) Create(ctx context.Context, msg model.Message) (model.Message, error) {
	args := m.Called(ctx, msg)
	created, _ := args.Get(0).(model.Message)
	return created, args.Error(1)
}

func (m *MessageRepoMock) FindConversation(ctx context.Context, userID int64, otherUserID int64) ([]model.Message, error) {
	args := m.Called(ctx, userID, otherUserID)
	msgs, _ := args.Get(0).([]model.Message)
	return msgs, args.Error(1)
}

func (m *MessageRepoMock) MarkReadBetween(ctx context.Context, otherUserID int64, readerID int64) (int64, error) {
	args := m.Called(ctx, otherUserID, readerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageRepoMock) FindDistinctChatUsers(ctx context.Context, userID int64) ([]repo.ChatUser, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]repo.ChatUser)
	return rows, args.Error(1)
}

type StatsRepoMock struct{ mock.Mock }

func (m *StatsRepoMock) SumRevenueByMonth(ctx context.Context, from time.Time, to time.Time) ([]repo.MonthlyRevenue, error) {
	args := m.Called(ctx, from, to)
	rows, _ := args.Get(0).([]repo.MonthlyRevenue)
	return rows, args.Error(1)
}

func (m *StatsRepoMock) RevenueByYearMonth(ctx context.Context, year int, month int) (int64, error) {
	args := m.Called(ctx, year, month)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StatsRepoMock) BestSellingByCategory(ctx context.Context, limitPerCategory int) ([]repo.BestSellingProduct, error) {
	args := m.Called(ctx, limitPerCategory)
	rows, _ := args.Get(0).([]repo.BestSellingProduct)
	return rows, args.Error(1)
}

func (m *StatsRepoMock) StockByCategory(ctx context.Context) ([]repo.CategoryStock, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.CategoryStock)
	return rows, args.Error(1)
}

type StatsCacheMock struct{ mock.Mock }

func (m *StatsCacheMock) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *StatsCacheMock) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *StatsCacheMock) Del(ctx context.Context, keys ...string) error {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, k := range keys {
		callArgs = append(callArgs, k)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

// =====================
// TransactionManagerのスタブ。fnを同じreposでそのまま実行する。
// =====================

type txReposStub struct {
	orders       *OrderRepoMock
	orderItems   *OrderItemRepoMock
	products     *ProductRepoMock
	productSizes *ProductSizeRepoMock
	carts        *CartRepoMock
	cartItems    *CartItemRepoMock
	users        *UserRepoMock
	sizes        *SizeRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		orders:       new(OrderRepoMock),
		orderItems:   new(OrderItemRepoMock),
		products:     new(ProductRepoMock),
		productSizes: new(ProductSizeRepoMock),
		carts:        new(CartRepoMock),
		cartItems:    new(CartItemRepoMock),
		users:        new(UserRepoMock),
		sizes:        new(SizeRepoMock),
	}
}

func (r *txReposStub) Orders() repo.OrderRepository            { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository    { return r.orderItems }
func (r *txReposStub) Products() repo.ProductRepository        { return r.products }
func (r *txReposStub) ProductSizes() repo.ProductSizeRepository { return r.productSizes }
func (r *txReposStub) Carts() repo.CartRepository              { return r.carts }
func (r *txReposStub) CartItems() repo.CartItemRepository      { return r.cartItems }
func (r *txReposStub) Users() repo.UserRepository              { return r.users }
func (r *txReposStub) Sizes() repo.SizeRepository              { return r.sizes }

type txManagerStub struct {
	repos *txReposStub
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}
