package handler

import (
	"stylestore/internal/chat"

	"github.com/labstack/echo/v4"
)

// /ws/chat のwebsocketエンドポイント。
// 認証はupgrade後のconnectフレームで行うのでミドルウェアは通さない。
type ChatHandler struct {
	hub      *chat.Hub
	verifier chat.TokenVerifier
	sender   chat.MessageSender
}

// DI
func NewChatHandler(hub *chat.Hub, verifier chat.TokenVerifier, sender chat.MessageSender) *ChatHandler {
	return &ChatHandler{hub: hub, verifier: verifier, sender: sender}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/chat", h.serve)
}

func (h *ChatHandler) serve(c echo.Context) error {
	chat.ServeWS(h.hub, h.verifier, h.sender, c.Response(), c.Request())
	return nil
}
