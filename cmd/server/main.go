package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shajghor/shajghor-backend/config"
	"github.com/shajghor/shajghor-backend/internal/app/controller"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/internal/app/service"
	"github.com/shajghor/shajghor-backend/internal/db"
	"github.com/shajghor/shajghor-backend/internal/middleware"
	"github.com/shajghor/shajghor-backend/internal/router"
	"github.com/shajghor/shajghor-backend/internal/scheduler"
	"github.com/shajghor/shajghor-backend/internal/storage"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"github.com/shajghor/shajghor-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting SHAJGHOR Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Optional redis-backed cart snapshots. Without redis carts live
	// only in process memory.
	var cartStore service.CartStore
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, carts will be memory-only", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cartStore = service.NewRedisCartStore()
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	adminRepo := repository.NewAdminUserRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(adminRepo, cfg)
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(productRepo, cartStore, cfg.Redis.CartTTL)
	checkoutService := service.NewCheckoutService(db.GetDB(), orderRepo, cartService, cfg.Delivery)
	adminProductService := service.NewAdminProductService(productRepo)
	orderService := service.NewOrderService(orderRepo)

	if err := authService.EnsureBootstrapAdmin(); err != nil {
		logger.Warn("Failed to seed bootstrap admin", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(catalogService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	adminProductController := controller.NewAdminProductController(adminProductService)
	adminOrderController := controller.NewAdminOrderController(orderService)
	uploadController := controller.NewUploadController(storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, adminRepo)

	cartSweeper := scheduler.NewCartSweeper(cartService, cfg.Redis.CartTTL)
	if err := cartSweeper.Start(); err != nil {
		logger.Warn("Cart sweeper not running", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cartSweeper.Stop()

	r := router.NewRouter(
		productController,
		cartController,
		checkoutController,
		authController,
		adminProductController,
		adminOrderController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
