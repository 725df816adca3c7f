package repository

import (
	"context"
	"time"

	"stylestore/internal/domain/model"
	repo "stylestore/internal/repository"

	"gorm.io/gorm"
)

type StatsGormRepository struct {
	db *gorm.DB
}

// DI
func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

// 売上はDELIVEREDのみ計上する。
func (r *StatsGormRepository) SumRevenueByMonth(ctx context.Context, from time.Time, to time.Time) ([]repo.MonthlyRevenue, error) {
	var rows []repo.MonthlyRevenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(YEAR FROM created_at)::int AS year,
		       EXTRACT(MONTH FROM created_at)::int AS month,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE status = ? AND created_at >= ? AND created_at < ?
		GROUP BY 1, 2
		ORDER BY 1, 2`,
		model.OrderStatusDelivered, from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StatsGormRepository) RevenueByYearMonth(ctx context.Context, year int, month int) (int64, error) {
	var revenue int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status = ?
		  AND EXTRACT(YEAR FROM created_at) = ?
		  AND EXTRACT(MONTH FROM created_at) = ?`,
		model.OrderStatusDelivered, year, month).
		Scan(&revenue).Error
	if err != nil {
		return 0, err
	}
	return revenue, nil
}

func (r *StatsGormRepository) BestSellingByCategory(ctx context.Context, limitPerCategory int) ([]repo.BestSellingProduct, error) {
	var rows []repo.BestSellingProduct
	err := r.db.WithContext(ctx).Raw(`
		SELECT category_id, category_name, product_id, product_name, total_sold
		FROM (
			SELECT c.id AS category_id,
			       c.name AS category_name,
			       p.id AS product_id,
			       p.name AS product_name,
			       SUM(oi.quantity) AS total_sold,
			       ROW_NUMBER() OVER (PARTITION BY c.id ORDER BY SUM(oi.quantity) DESC) AS rn
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id AND o.status = ?
			JOIN products p ON p.id = oi.product_id
			JOIN categories c ON c.id = p.category_id
			GROUP BY c.id, c.name, p.id, p.name
		) ranked
		WHERE rn <= ?
		ORDER BY category_id, total_sold DESC`,
		model.OrderStatusDelivered, limitPerCategory).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StatsGormRepository) StockByCategory(ctx context.Context) ([]repo.CategoryStock, error) {
	var rows []repo.CategoryStock
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id AS category_id,
		       c.name AS category_name,
		       COALESCE(SUM(ps.stock), 0) AS total_stock
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		LEFT JOIN product_sizes ps ON ps.product_id = p.id
		GROUP BY c.id, c.name
		ORDER BY c.id`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
