package main

import (
	"log/slog"
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/cache"
	"app/internal/infra/db"
	"app/internal/infra/mail"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/pkg/logging"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL"), cfg.GoEnv)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Error("db connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Address{},
		&model.Category{},
		&model.Car{},
		&model.Product{},
		&model.ProductImage{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Banner{},
		&model.Contact{},
	); err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	//Redis（パスワード再設定トークン用）
	rdb := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	resetTokens := cache.NewResetTokenRedisStore(rdb)

	mailer := mail.NewLogMailer(logger)

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	carRepo := infraRepo.NewCarGormRepository(gormDB)
	bannerRepo := infraRepo.NewBannerGormRepository(gormDB)
	contactRepo := infraRepo.NewContactGormRepository(gormDB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo)
	resetUC := usecase.NewPasswordResetUsecase(cfg, userRepo, resetTokens, mailer)
	profileUC := usecase.NewProfileUsecase(profileRepo, addressRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, carRepo, bannerRepo, contactRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, addressRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, paymentRepo, productRepo)

	adminProductUC := usecase.NewAdminProductUsecase(productRepo, inventoryRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, orderRepo, orderItemRepo, paymentRepo, productRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo)
	adminPaymentUC := usecase.NewAdminPaymentUsecase(paymentRepo)
	adminCatalogUC := usecase.NewAdminCatalogUsecase(categoryRepo, carRepo, bannerRepo, contactRepo)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC, resetUC),
		Profile:  handler.NewProfileHandler(profileUC),
		Address:  handler.NewAddressHandler(addressUC),
		Product:  handler.NewProductHandler(productUC),
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Checkout: handler.NewCheckoutHandler(checkoutUC),
		Order:    handler.NewOrderHandler(orderUC),

		AdminProduct:   handler.NewAdminProductHandler(adminProductUC),
		AdminOrder:     handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:      handler.NewAdminUserHandler(adminUserUC),
		AdminPayment:   handler.NewAdminPaymentHandler(adminPaymentUC),
		AdminCatalog:   handler.NewAdminCatalogHandler(adminCatalogUC),
		AdminDashboard: handler.NewAdminDashboardHandler(dashboardUC),
	}

	e := server.New(cfg, logger, handlers)

	logger.Info("server starting", slog.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
