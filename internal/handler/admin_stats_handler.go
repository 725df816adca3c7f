package handler

import (
	"stylestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/admin/stats の管理ダッシュボードAPI
type AdminStatsHandler struct {
	uc *usecase.StatsUsecase
}

// DI
func NewAdminStatsHandler(uc *usecase.StatsUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{uc: uc}
}

func (h *AdminStatsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stats/counts", h.counts)
	g.GET("/stats/revenue/monthly", h.monthlyRevenue)
	g.GET("/stats/revenue/growth", h.revenueGrowth)
	g.GET("/stats/best-selling", h.bestSelling)
	g.GET("/stats/category-stock", h.categoryStock)
}

func (h *AdminStatsHandler) counts(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "counts retrieved", out)
}

func (h *AdminStatsHandler) monthlyRevenue(c echo.Context) error {
	out, err := h.uc.MonthlyRevenue(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "monthly revenue retrieved", out)
}

func (h *AdminStatsHandler) revenueGrowth(c echo.Context) error {
	out, err := h.uc.RevenueGrowth(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "revenue growth retrieved", out)
}

func (h *AdminStatsHandler) bestSelling(c echo.Context) error {
	out, err := h.uc.BestSellingByCategory(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "best selling products retrieved", out)
}

func (h *AdminStatsHandler) categoryStock(c echo.Context) error {
	out, err := h.uc.StockByCategory(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "category stock retrieved", out)
}
