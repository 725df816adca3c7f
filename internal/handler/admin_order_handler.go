package handler

import (
	"net/http"
	"strconv"

	"stylestore/internal/domain/model"
	"stylestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/admin/orders の管理API
type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.get)
	//遷移は動詞で分ける（ステータス文字列は受け取らない）
	g.PUT("/orders/:id/confirm", h.confirm)
	g.PUT("/orders/:id/cancel", h.cancel)
	g.PUT("/orders/:id/deliver", h.deliver)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	in := usecase.AdminOrderListInput{Page: 1, Size: 10}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid page")
		}
		in.Page = p
	}
	if v := c.QueryParam("size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid size")
		}
		in.Size = s
	}
	in.SortBy = c.QueryParam("sort_by")
	in.SortDir = c.QueryParam("sort_dir")

	out, err := h.uc.ListOrders(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "orders retrieved", out)
}

func (h *AdminOrderHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "order retrieved", out)
}

func (h *AdminOrderHandler) confirm(c echo.Context) error {
	return h.transition(c, model.OrderStatusShipping, "order confirmed")
}

func (h *AdminOrderHandler) cancel(c echo.Context) error {
	return h.transition(c, model.OrderStatusCancelled, "order cancelled")
}

func (h *AdminOrderHandler) deliver(c echo.Context) error {
	return h.transition(c, model.OrderStatusDelivered, "order delivered")
}

func (h *AdminOrderHandler) transition(c echo.Context, next model.OrderStatus, message string) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), id, next)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, message, out)
}
