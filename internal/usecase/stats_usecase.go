package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	repo "stylestore/internal/repository"
)

// 集計キャッシュのキーとTTL
const (
	statsRevenueMonthlyKey = "stats:revenue:monthly"
	statsRevenueGrowthKey  = "stats:revenue:growth"
	statsCacheTTL          = 10 * time.Minute
)

type StatsUsecase struct {
	stats    repo.StatsRepository
	orders   repo.OrderRepository
	products repo.ProductRepository
	users    repo.UserRepository
	cache    repo.StatsCache
	now      func() time.Time
}

// DI
func NewStatsUsecase(
	stats repo.StatsRepository,
	orders repo.OrderRepository,
	products repo.ProductRepository,
	users repo.UserRepository,
	cache repo.StatsCache,
) *StatsUsecase {
	return &StatsUsecase{
		stats:    stats,
		orders:   orders,
		products: products,
		users:    users,
		cache:    cache,
		now:      time.Now,
	}
}

type DashboardOutput struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProducts int64 `json:"total_products"`
	TotalOrders   int64 `json:"total_orders"`
}

// 成長率は「前月 vs 前々月」の確定売上で見る。当月は進行中なので比較に使わない。
type RevenueGrowthOutput struct {
	Year                 int     `json:"year"`
	Month                int     `json:"month"`
	PreviousMonthRevenue int64   `json:"previous_month_revenue"`
	TwoMonthsAgoRevenue  int64   `json:"two_months_ago_revenue"`
	Growth               int64   `json:"growth"`
	GrowthPercentage     float64 `json:"growth_percentage"`
}

func (u *StatsUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	users, err := u.users.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	products, err := u.products.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orders, err := u.orders.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{
		TotalUsers:    users,
		TotalProducts: products,
		TotalOrders:   orders,
	}, nil
}

// MonthlyRevenue は直近12か月の売上。cache-aside。
func (u *StatsUsecase) MonthlyRevenue(ctx context.Context) ([]repo.MonthlyRevenue, error) {
	if cached, ok, err := u.cache.Get(ctx, statsRevenueMonthlyKey); err == nil && ok {
		var rows []repo.MonthlyRevenue
		if err := json.Unmarshal([]byte(cached), &rows); err == nil {
			return rows, nil
		}
		//壊れたキャッシュは捨ててDBへ
		_ = u.cache.Del(ctx, statsRevenueMonthlyKey)
	}

	now := u.now()
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	from := to.AddDate(-1, 0, 0)

	queried, err := u.stats.SumRevenueByMonth(ctx, from, to)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//売上ゼロの月も行として返す（グラフの欠けを防ぐ）
	byMonth := make(map[[2]int]int64, len(queried))
	for _, r := range queried {
		byMonth[[2]int{r.Year, r.Month}] = r.Revenue
	}
	rows := make([]repo.MonthlyRevenue, 0, 12)
	for m := from; m.Before(to); m = m.AddDate(0, 1, 0) {
		rows = append(rows, repo.MonthlyRevenue{
			Year:    m.Year(),
			Month:   int(m.Month()),
			Revenue: byMonth[[2]int{m.Year(), int(m.Month())}],
		})
	}

	if b, err := json.Marshal(rows); err == nil {
		_ = u.cache.Set(ctx, statsRevenueMonthlyKey, string(b), statsCacheTTL)
	}
	return rows, nil
}

// RevenueGrowth は前月売上と前々月売上の比較。cache-aside。
func (u *StatsUsecase) RevenueGrowth(ctx context.Context) (RevenueGrowthOutput, error) {
	if cached, ok, err := u.cache.Get(ctx, statsRevenueGrowthKey); err == nil && ok {
		var out RevenueGrowthOutput
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
		_ = u.cache.Del(ctx, statsRevenueGrowthKey)
	}

	now := u.now()
	cur := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := cur.AddDate(0, -1, 0)
	twoAgo := cur.AddDate(0, -2, 0)

	prevRevenue, err := u.stats.RevenueByYearMonth(ctx, prev.Year(), int(prev.Month()))
	if err != nil {
		return RevenueGrowthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	twoAgoRevenue, err := u.stats.RevenueByYearMonth(ctx, twoAgo.Year(), int(twoAgo.Month()))
	if err != nil {
		return RevenueGrowthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := RevenueGrowthOutput{
		Year:                 cur.Year(),
		Month:                int(cur.Month()),
		PreviousMonthRevenue: prevRevenue,
		TwoMonthsAgoRevenue:  twoAgoRevenue,
	}
	switch {
	case twoAgoRevenue == 0 && prevRevenue > 0:
		//基準月がゼロから立ち上がった場合は100%扱い
		out.Growth = prevRevenue
		out.GrowthPercentage = 100
	case twoAgoRevenue == 0:
		//両月ゼロなら成長なし
	default:
		out.Growth = prevRevenue - twoAgoRevenue
		out.GrowthPercentage = float64(out.Growth) / float64(twoAgoRevenue) * 100
	}

	if b, err := json.Marshal(out); err == nil {
		_ = u.cache.Set(ctx, statsRevenueGrowthKey, string(b), statsCacheTTL)
	}
	return out, nil
}

func (u *StatsUsecase) BestSellingByCategory(ctx context.Context) ([]repo.BestSellingProduct, error) {
	rows, err := u.stats.BestSellingByCategory(ctx, 5)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *StatsUsecase) StockByCategory(ctx context.Context) ([]repo.CategoryStock, error) {
	rows, err := u.stats.StockByCategory(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}
