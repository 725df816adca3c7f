package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	repo "stylestore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newStatsUsecaseForTest(now time.Time) (*StatsUsecase, *StatsRepoMock, *StatsCacheMock) {
	stats := new(StatsRepoMock)
	cache := new(StatsCacheMock)
	uc := NewStatsUsecase(stats, new(OrderRepoMock), new(ProductRepoMock), new(UserRepoMock), cache)
	uc.now = func() time.Time { return now }
	return uc, stats, cache
}

func TestStatsUsecase_MonthlyRevenue_CacheHitSkipsDB(t *testing.T) {
	uc, stats, cache := newStatsUsecaseForTest(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	cached, _ := json.Marshal([]repo.MonthlyRevenue{{Year: 2026, Month: 7, Revenue: 120000}})
	cache.On("Get", ctx, statsRevenueMonthlyKey).Return(string(cached), true, nil)

	rows, err := uc.MonthlyRevenue(ctx)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(120000), rows[0].Revenue)
	stats.AssertNotCalled(t, "SumRevenueByMonth", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatsUsecase_MonthlyRevenue_CacheMissQueriesAndStores(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, cache := newStatsUsecaseForTest(now)
	ctx := context.Background()

	cache.On("Get", ctx, statsRevenueMonthlyKey).Return("", false, nil)

	//当月末までの直近12か月
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	stats.On("SumRevenueByMonth", ctx, from, to).
		Return([]repo.MonthlyRevenue{{Year: 2026, Month: 8, Revenue: 99000}}, nil)
	cache.On("Set", ctx, statsRevenueMonthlyKey, mock.Anything, statsCacheTTL).Return(nil)

	rows, err := uc.MonthlyRevenue(ctx)

	assert.NoError(t, err)
	//売上の無い月もゼロ埋めで12行返る
	assert.Len(t, rows, 12)
	assert.Equal(t, repo.MonthlyRevenue{Year: 2025, Month: 9, Revenue: 0}, rows[0])
	assert.Equal(t, repo.MonthlyRevenue{Year: 2026, Month: 8, Revenue: 99000}, rows[11])
	cache.AssertCalled(t, "Set", ctx, statsRevenueMonthlyKey, mock.Anything, statsCacheTTL)
}

func TestStatsUsecase_RevenueGrowth_ComputesRate(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, cache := newStatsUsecaseForTest(now)
	ctx := context.Background()

	cache.On("Get", ctx, statsRevenueGrowthKey).Return("", false, nil)
	//前月（7月）と前々月（6月）の確定売上を比較する
	stats.On("RevenueByYearMonth", ctx, 2026, 7).Return(int64(150000), nil)
	stats.On("RevenueByYearMonth", ctx, 2026, 6).Return(int64(100000), nil)
	cache.On("Set", ctx, statsRevenueGrowthKey, mock.Anything, statsCacheTTL).Return(nil)

	out, err := uc.RevenueGrowth(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2026, out.Year)
	assert.Equal(t, 8, out.Month)
	assert.Equal(t, int64(150000), out.PreviousMonthRevenue)
	assert.Equal(t, int64(100000), out.TwoMonthsAgoRevenue)
	assert.Equal(t, int64(50000), out.Growth)
	assert.InDelta(t, 50.0, out.GrowthPercentage, 0.001)
}

func TestStatsUsecase_RevenueGrowth_ZeroBaseMonthIsFullGrowth(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, cache := newStatsUsecaseForTest(now)
	ctx := context.Background()

	cache.On("Get", ctx, statsRevenueGrowthKey).Return("", false, nil)
	stats.On("RevenueByYearMonth", ctx, 2026, 7).Return(int64(50000), nil)
	stats.On("RevenueByYearMonth", ctx, 2026, 6).Return(int64(0), nil)
	cache.On("Set", ctx, statsRevenueGrowthKey, mock.Anything, statsCacheTTL).Return(nil)

	out, err := uc.RevenueGrowth(ctx)

	assert.NoError(t, err)
	//前々月0で前月に売上があれば100%扱い（ゼロ除算しない）
	assert.Equal(t, int64(50000), out.Growth)
	assert.Equal(t, float64(100), out.GrowthPercentage)
}

func TestStatsUsecase_RevenueGrowth_BothMonthsZero(t *testing.T) {
	now := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	uc, stats, cache := newStatsUsecaseForTest(now)
	ctx := context.Background()

	cache.On("Get", ctx, statsRevenueGrowthKey).Return("", false, nil)
	stats.On("RevenueByYearMonth", ctx, 2026, 7).Return(int64(0), nil)
	stats.On("RevenueByYearMonth", ctx, 2026, 6).Return(int64(0), nil)
	cache.On("Set", ctx, statsRevenueGrowthKey, mock.Anything, statsCacheTTL).Return(nil)

	out, err := uc.RevenueGrowth(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Growth)
	assert.Equal(t, float64(0), out.GrowthPercentage)
}

func TestStatsUsecase_Dashboard_Counts(t *testing.T) {
	stats := new(StatsRepoMock)
	orders := new(OrderRepoMock)
	products := new(ProductRepoMock)
	users := new(UserRepoMock)
	uc := NewStatsUsecase(stats, orders, products, users, new(StatsCacheMock))
	ctx := context.Background()

	users.On("Count", ctx).Return(int64(10), nil)
	products.On("Count", ctx).Return(int64(20), nil)
	orders.On("Count", ctx).Return(int64(30), nil)

	out, err := uc.Dashboard(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.TotalUsers)
	assert.Equal(t, int64(20), out.TotalProducts)
	assert.Equal(t, int64(30), out.TotalOrders)
}
