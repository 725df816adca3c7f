package handler

import (
	"net/http"
	"strconv"

	"stylestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/admin/users の管理API
type AdminUserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewAdminUserHandler(uc *usecase.UserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type UserStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminUserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/users", h.list)
	g.GET("/users/:id", h.get)
	g.PUT("/users/:id/status", h.updateStatus)
}

func (h *AdminUserHandler) get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	out, err := h.uc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "user retrieved", out)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid page")
		}
		page = p
	}

	size := 10
	if v := c.QueryParam("size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return respondError(c, http.StatusBadRequest, "invalid size")
		}
		size = s
	}

	out, err := h.uc.ListUsers(c.Request().Context(), page, size)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "users retrieved", out)
}

func (h *AdminUserHandler) updateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	var req UserStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.UpdateUserStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "user status updated", out)
}
