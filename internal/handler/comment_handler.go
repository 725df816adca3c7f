package handler

import (
	"net/http"
	"strconv"

	"stylestore/internal/domain/model"
	"stylestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 商品コメントのHTTP。閲覧は公開、投稿・編集は要ログイン。
type CommentHandler struct {
	uc *usecase.CommentUsecase
}

// DI
func NewCommentHandler(uc *usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/comments/product/:productId", h.list)
}

func (h *CommentHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/comments", h.create)
	g.PUT("/comments/:id", h.update)
	g.DELETE("/comments/:id", h.delete)
}

func (h *CommentHandler) list(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	out, err := h.uc.ListByProduct(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "comments retrieved", out)
}

func (h *CommentHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req usecase.CreateCommentInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return respondCreated(c, "comment created", out)
}

func (h *CommentHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	var req usecase.SaveCommentInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Update(c.Request().Context(), userID, commentID, req)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "comment updated", out)
}

func (h *CommentHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}
	role, _ := getRoleFromContext(c)

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), userID, model.Role(role), commentID); err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "comment deleted", nil)
}
