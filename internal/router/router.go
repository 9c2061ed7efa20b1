package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shajghor/shajghor-backend/config"
	"github.com/shajghor/shajghor-backend/internal/app/controller"
	"github.com/shajghor/shajghor-backend/internal/middleware"
)

type Router struct {
	productController      *controller.ProductController
	cartController         *controller.CartController
	checkoutController     *controller.CheckoutController
	authController         *controller.AuthController
	adminProductController *controller.AdminProductController
	adminOrderController   *controller.AdminOrderController
	uploadController       *controller.UploadController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	authController *controller.AuthController,
	adminProductController *controller.AdminProductController,
	adminOrderController *controller.AdminOrderController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:      productController,
		cartController:         cartController,
		checkoutController:     checkoutController,
		authController:         authController,
		adminProductController: adminProductController,
		adminOrderController:   adminOrderController,
		uploadController:       uploadController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "SHAJGHOR API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/featured", r.productController.GetFeaturedProducts)
			products.GET("/:id", r.productController.GetProductByID)
		}

		v1.GET("/categories", r.productController.GetCategories)

		cart := v1.Group("/cart")
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddToCart)
			cart.PUT("/items", r.cartController.UpdateCartItem)
			cart.DELETE("/items/:product_id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		checkout := v1.Group("/checkout")
		{
			checkout.GET("/quote", r.checkoutController.Quote)
			checkout.POST("", r.checkoutController.PlaceOrder)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", r.adminProductController.ListProducts)
				adminProducts.GET("/:id", r.adminProductController.GetProduct)
				adminProducts.POST("", r.adminProductController.CreateProduct)
				adminProducts.PUT("/:id", r.adminProductController.UpdateProduct)
				adminProducts.DELETE("/:id", r.adminProductController.DeleteProduct)
			}

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", r.adminOrderController.ListOrders)
				adminOrders.GET("/stats", r.adminOrderController.GetStats)
				adminOrders.GET("/export", r.adminOrderController.ExportOrders)
				adminOrders.GET("/:id", r.adminOrderController.GetOrder)
				adminOrders.PUT("/:id/status", r.adminOrderController.UpdateOrderStatus)
			}

			admin.POST("/uploads/presign", r.uploadController.PresignUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Cart-Token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Cart-Token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
