package server

import (
	"net/http"

	"stylestore/internal/config"
	"stylestore/internal/handler"
	"stylestore/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全HandlerをまとめてDIするための箱。
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Catalog      *handler.CatalogHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Comment      *handler.CommentHandler
	Profile      *handler.ProfileHandler
	Message      *handler.MessageHandler
	Chat         *handler.ChatHandler
	AdminProduct *handler.AdminProductHandler
	AdminCatalog *handler.AdminCatalogHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminUser    *handler.AdminUserHandler
	AdminStats   *handler.AdminStatsHandler
}

// New はルーティング済みのechoを返す。
func New(cfg config.Config, verifier *middleware.JWTVerifier, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	registerRoutes(e, verifier, h)
	return e
}
