package server

import (
	"stylestore/internal/middleware"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, verifier *middleware.JWTVerifier, h Handlers) {
	//認証API（登録・ログイン）
	v1 := e.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)

	//公開API（商品閲覧はログイン不要）
	public := e.Group("/api/user")
	h.Product.RegisterRoutes(public)
	h.Catalog.RegisterRoutes(public)
	h.Comment.RegisterPublicRoutes(public)

	//要ログインAPI
	user := e.Group("/api/user")
	user.Use(middleware.AuthJWT(verifier))
	h.Cart.RegisterRoutes(user)
	h.Order.RegisterRoutes(user)
	h.Comment.RegisterAuthRoutes(user)
	h.Profile.RegisterRoutes(user)

	//チャットREST
	messages := e.Group("/api/messages")
	messages.Use(middleware.AuthJWT(verifier))
	h.Message.RegisterRoutes(messages)

	//管理API
	admin := e.Group("/api/admin")
	admin.Use(middleware.AuthJWT(verifier))
	admin.Use(middleware.AdminRoleGuard())
	h.AdminProduct.RegisterRoutes(admin)
	h.AdminCatalog.RegisterRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminUser.RegisterRoutes(admin)
	h.AdminStats.RegisterRoutes(admin)

	//websocket（認証はconnectフレーム）
	h.Chat.RegisterRoutes(e)
}
