package usecase

import (
	"context"
	"net/http"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"
)

type AdminOrderUsecase struct {
	tx    repo.TransactionManager
	cache repo.StatsCache
}

// DI
func NewAdminOrderUsecase(tx repo.TransactionManager, cache repo.StatsCache) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, cache: cache}
}

type AdminOrderListInput struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

type AdminOrderListOutput struct {
	Orders     []OrderOutput `json:"orders"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalPages int64         `json:"total_pages"`
}

func (u *AdminOrderUsecase) ListOrders(ctx context.Context, in AdminOrderListInput) (AdminOrderListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size < 1 || in.Size > 100 {
		in.Size = 10
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{
			Page:    in.Page,
			Size:    in.Size,
			SortBy:  in.SortBy,
			SortDir: in.SortDir,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items, adminProductNames(ctx, r, items)))
		}

		out = AdminOrderListOutput{
			Orders:     outs,
			Total:      total,
			Page:       in.Page,
			Size:       in.Size,
			TotalPages: (total + int64(in.Size) - 1) / int64(in.Size),
		}
		return nil
	})

	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// GetOrder は管理者向けの注文詳細。所有者を問わず参照できる。
func (u *AdminOrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
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

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items, adminProductNames(ctx, r, items))
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// UpdateStatus は管理者による注文ステータス更新。遷移表に無い組は拒否。
// キャンセルでも在庫は戻さない。DELIVEREDになったら売上キャッシュを破棄する。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, next model.OrderStatus) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	switch next {
	case model.OrderStatusShipping, model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
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

		if !o.Status.CanTransitionTo(next) {
			return &InvalidTransitionError{From: string(o.Status), To: string(next)}
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, next); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		o.Status = next

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items, adminProductNames(ctx, r, items))
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//売上はDELIVERED基準なのでここで破棄。失敗してもTTLで回復する。
	if next == model.OrderStatusDelivered {
		_ = u.cache.Del(ctx, statsRevenueMonthlyKey, statsRevenueGrowthKey)
	}

	return out, nil
}

func adminProductNames(ctx context.Context, r repo.TxRepos, items []model.OrderItem) map[int64]string {
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
