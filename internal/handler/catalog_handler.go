package handler

import (
	"stylestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カテゴリの公開API
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/categories", h.listCategories)
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	out, err := h.uc.ListActiveCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "categories retrieved", out)
}
