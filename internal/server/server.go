package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ハンドラ一式。main.goで組み立てて渡す
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Coupon   *handler.CouponHandler
	Order    *handler.OrderHandler
	Staff    *handler.StaffHandler
	Shipping *handler.ShippingHandler
}

// Newはルーティング済みのechoを返す
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.PrometheusMetrics())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	//認証なし
	h.Auth.RegisterRoutes(e)
	h.Catalog.RegisterPublicRoutes(e)

	//要ログイン
	authed := e.Group("", middleware.AuthJWT(cfg))
	h.Order.RegisterAuthRoutes(authed)
	h.Coupon.RegisterAuthRoutes(authed)
	h.Shipping.RegisterAuthRoutes(authed)

	//スタッフ専用
	staff := e.Group("/staff", middleware.AuthJWT(cfg), middleware.StaffRoleGuard())
	h.Catalog.RegisterStaffRoutes(staff)
	h.Coupon.RegisterStaffRoutes(staff)
	h.Order.RegisterStaffRoutes(staff)
	h.Staff.RegisterStaffRoutes(staff)
	h.Shipping.RegisterStaffRoutes(staff)

	return e
}
