package repository

import (
	"context"
	"time"
)

// 月別売上の集計行
type MonthlyRevenue struct {
	Year    int   `json:"year"`
	Month   int   `json:"month"`
	Revenue int64 `json:"revenue"`
}

// カテゴリ別ベストセラー
type BestSellingProduct struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	TotalSold    int64  `json:"total_sold"`
}

// カテゴリ別在庫合計
type CategoryStock struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	TotalStock   int64  `json:"total_stock"`
}

// 管理ダッシュボード用のSQL射影だけを約束。
type StatsRepository interface {
	// [from, to) のDELIVERED注文を年月でグルーピング
	SumRevenueByMonth(ctx context.Context, from time.Time, to time.Time) ([]MonthlyRevenue, error)
	// 指定年月のDELIVERED売上合計（無ければ0）
	RevenueByYearMonth(ctx context.Context, year int, month int) (int64, error)
	BestSellingByCategory(ctx context.Context, limitPerCategory int) ([]BestSellingProduct, error)
	StockByCategory(ctx context.Context) ([]CategoryStock, error)
}
