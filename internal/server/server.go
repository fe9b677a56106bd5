package server

import (
	"log/slog"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// HandlersはルーティングするHTTPハンドラ一式。
type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Address  *handler.AddressHandler
	Product  *handler.ProductHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler

	AdminProduct   *handler.AdminProductHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminUser      *handler.AdminUserHandler
	AdminPayment   *handler.AdminPaymentHandler
	AdminCatalog   *handler.AdminCatalogHandler
	AdminDashboard *handler.AdminDashboardHandler
}

// New はechoを組み立てて全ルートを登録する。
func New(cfg config.Config, logger *slog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	//CORS（フロントのoriginだけ許可）
	origins := []string{"http://localhost:3000"}
	if cfg.FEURL != "" {
		origins = []string{cfg.FEURL}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: true,
	}))

	//アクセスログはslogへ
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.InfoContext(c.Request().Context(), "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	registerRoutes(e, cfg, h)

	return e
}

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	//公開
	h.Product.RegisterRoutes(e)
	h.Catalog.RegisterRoutes(e)

	//認証まわり
	h.Auth.RegisterRoutes(e, cfg)

	//会員向け
	h.Profile.RegisterRoutes(e, cfg)
	h.Address.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)

	//管理者向け
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
	h.AdminPayment.RegisterRoutes(e, cfg)
	h.AdminCatalog.RegisterRoutes(e, cfg)
	h.AdminDashboard.RegisterRoutes(e, cfg)
}
