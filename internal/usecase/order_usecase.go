package usecase

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

// DI
func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderLineInput struct {
	ProductID int64 `json:"product_id"`
	SizeID    int64 `json:"size_id"`
	Quantity  int64 `json:"quantity"`
	Price     int64 `json:"price"`
}

type CreateOrderInput struct {
	Items           []OrderLineInput `json:"items"`
	ShippingAddress string           `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
}

type OrderItemDTO struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	SizeID      int64  `json:"size_id"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

type OrderOutput struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"user_id"`
	Status          string         `json:"status"`
	TotalAmount     int64          `json:"total_amount"`
	ShippingAddress string         `json:"shipping_address"`
	PaymentMethod   string         `json:"payment_method"`
	CreatedAt       time.Time      `json:"created_at"`
	Items           []OrderItemDTO `json:"items"`
}

// CreateOrder は注文確定。明細検証・在庫減算・注文作成を1トランザクションで
// 行い、1行でも失敗すれば全体をロールバックする。カートは触らない
// （カート経由でない直接注文もあるため、空にするかはクライアントの判断）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order must contain at least one item")
	}
	if in.ShippingAddress == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "shipping_address is required")
	}
	if !model.ValidPaymentMethod(model.PaymentMethod(in.PaymentMethod)) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}
	for _, line := range in.Items {
		if line.ProductID <= 0 || line.SizeID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order item")
		}
		if line.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
		}
		if line.Price < 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		names := make(map[int64]string, len(in.Items))
		var total int64 = 0

		for _, line := range in.Items {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			ps, err := r.ProductSizes().FindByProductAndSize(ctx, line.ProductID, line.SizeID)
			if err != nil {
				if err == repo.ErrNotFound {
					return NewHTTPError(http.StatusNotFound, "product size not found")
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りなければロールバック）
			ok, err := r.ProductSizes().DecreaseStockIfEnough(ctx, line.ProductID, line.SizeID, line.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				sizeName := strconv.FormatInt(line.SizeID, 10)
				if size, err := r.Sizes().FindByID(ctx, line.SizeID); err == nil {
					sizeName = size.Name
				}
				return &InsufficientStockError{
					ProductName: p.Name,
					SizeName:    sizeName,
					Available:   ps.Stock,
					Requested:   line.Quantity,
				}
			}

			names[line.ProductID] = p.Name
			orderItems = append(orderItems, model.OrderItem{
				ProductID: line.ProductID,
				SizeID:    line.SizeID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			})

			//合計はリクエストの単価で計算する
			total += line.Price * line.Quantity
		}

		order, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			TotalAmount:     total,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   model.PaymentMethod(in.PaymentMethod),
			Status:          model.OrderStatusCreated,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, orderItems, names)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items, u.productNames(ctx, r, items)))
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return outs, nil
}

// GetOrder は注文詳細。本人と管理者だけが見られる。
func (u *OrderUsecase) GetOrder(ctx context.Context, callerID int64, callerRole model.Role, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//他人の注文は「存在しない扱い」にする
		if o.UserID != callerID && callerRole != model.RoleAdmin {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items, u.productNames(ctx, r, items))
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelMyOrder は購入者自身のキャンセル。CREATED/SHIPPINGからのみ。
// キャンセルしても在庫は戻さない（返品処理は管理側の手作業）。
func (u *OrderUsecase) CancelMyOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//キャンセルできるのは本人だけ
		if o.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "cannot cancel another user's order")
		}

		if !o.Status.CanTransitionTo(model.OrderStatusCancelled) {
			return &InvalidTransitionError{From: string(o.Status), To: string(model.OrderStatusCancelled)}
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		o.Status = model.OrderStatusCancelled

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items, u.productNames(ctx, r, items))
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) productNames(ctx context.Context, r repo.TxRepos, items []model.OrderItem) map[int64]string {
	names := make(map[int64]string, len(items))
	for _, it := range items {
		if _, ok := names[it.ProductID]; ok {
			continue
		}
		if p, err := r.Products().FindByID(ctx, it.ProductID); err == nil {
			names[it.ProductID] = p.Name
		}
	}
	return names
}

func toOrderOutput(o model.Order, items []model.OrderItem, names map[int64]string) OrderOutput {
	dtos := make([]OrderItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, OrderItemDTO{
			ProductID:   it.ProductID,
			ProductName: names[it.ProductID],
			SizeID:      it.SizeID,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   string(o.PaymentMethod),
		CreatedAt:       o.CreatedAt,
		Items:           dtos,
	}
}
