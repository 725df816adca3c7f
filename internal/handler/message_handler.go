package handler

import (
	"net/http"
	"strconv"

	"stylestore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/messages のHTTP（要ログイン）。RESTとwebsocketは同じusecaseを通る。
type MessageHandler struct {
	uc *usecase.MessageUsecase
}

// DI
func NewMessageHandler(uc *usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.send)
	g.GET("/users", h.listChatUsers)
	g.GET("/conversation/:userId", h.conversation)
	g.PATCH("/conversation/:userId/read", h.markRead)
}

func (h *MessageHandler) send(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req usecase.SendMessageInput
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.SendMessage(c.Request().Context(), userID, req)
	if err != nil {
		return writeError(c, err)
	}
	return respondCreated(c, "message sent", out)
}

func (h *MessageHandler) conversation(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	otherID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid user id")
	}

	out, err := h.uc.GetConversation(c.Request().Context(), userID, otherID)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "conversation retrieved", out)
}

func (h *MessageHandler) markRead(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	otherID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "invalid user id")
	}

	n, err := h.uc.MarkRead(c.Request().Context(), userID, otherID)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "messages marked as read", map[string]int64{"updated": n})
}

func (h *MessageHandler) listChatUsers(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.ListChatUsers(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return respondOK(c, "chat users retrieved", out)
}
