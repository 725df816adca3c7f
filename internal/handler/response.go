package handler

import (
	"errors"
	"net/http"

	"stylestore/internal/middleware"
	"stylestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全エンドポイント共通のレスポンス封筒。
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, ApiResponse{Success: true, Message: message, Data: data})
}

func respondCreated(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, ApiResponse{Success: true, Message: message, Data: data})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, ApiResponse{Success: false, Message: message})
}

// usecaseのエラーをHTTPステータスに写す。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var stockErr *usecase.InsufficientStockError
	if errors.As(err, &stockErr) {
		return respondError(c, http.StatusBadRequest, stockErr.Error())
	}

	var transErr *usecase.InvalidTransitionError
	if errors.As(err, &transErr) {
		return respondError(c, http.StatusBadRequest, transErr.Error())
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return respondError(c, he.Status, he.Message)
	}

	//500
	return respondError(c, http.StatusInternalServerError, "internal error")
}

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	id, ok := v.(int64)
	return id, ok && id > 0
}

func getRoleFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserRoleKey)
	role, ok := v.(string)
	return role, ok && role != ""
}
