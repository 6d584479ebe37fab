package server

import (
	"greenbasket/internal/config"
	"greenbasket/internal/middleware"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	// 公開ルート
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)

	// 認証必須
	auth := e.Group("", middleware.AuthJWT(cfg))

	// ロール別
	admin := e.Group("", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	delivery := e.Group("", middleware.AuthJWT(cfg), middleware.DeliveryRoleGuard())
	staff := e.Group("", middleware.AuthJWT(cfg), middleware.StaffRoleGuard())

	h.Cart.RegisterRoutes(auth)
	h.Order.RegisterRoutes(auth, admin, staff)
	h.Payment.RegisterRoutes(auth, admin)
	h.Delivery.RegisterRoutes(delivery)
	h.Wallet.RegisterRoutes(auth)
	h.Address.RegisterRoutes(auth)
	h.Admin.RegisterRoutes(auth, admin)
}
