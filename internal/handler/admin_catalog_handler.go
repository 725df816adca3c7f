package handler

import (
	"net/http"
	"strconv"

	"stylestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カテゴリ・サイズの管理API
type AdminCatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewAdminCatalogHandler(uc *usecase.CatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{uc: uc}
}

func (h *AdminCatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/categories", h.listCategories)
	g.POST("/categories", h.createCategory)
	g.PUT("/categories/:id", h.updateCategory)
	g.DELETE("/categories/:id", h.deleteCategory)

	g.GET("/sizes", h.listSizes)
	g.POST("/sizes", h.createSize)
	g.PUT("/sizes/:id", h.updateSize)
	g.DELETE("/sizes/:id", h.deleteSize)
}

func (h *AdminCatalogHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListAllCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "categories retrieved", out)
}

func (h *AdminCatalogHandler) createCategory(c echo.Context) error {
	var req usecase.SaveCategoryInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return respondCreated(c, "category created", out)
}

func (h *AdminCatalogHandler) updateCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	var req usecase.SaveCategoryInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "category updated", out)
}

func (h *AdminCatalogHandler) deleteCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "category deleted", nil)
}

func (h *AdminCatalogHandler) listSizes(c echo.Context) error {
	out, err := h.uc.ListSizes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "sizes retrieved", out)
}

func (h *AdminCatalogHandler) createSize(c echo.Context) error {
	var req usecase.SaveSizeInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.CreateSize(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return respondCreated(c, "size created", out)
}

func (h *AdminCatalogHandler) updateSize(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	var req usecase.SaveSizeInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.UpdateSize(c.Request().Context(), id, req)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "size updated", out)
}

func (h *AdminCatalogHandler) deleteSize(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.uc.DeleteSize(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "size deleted", nil)
}
