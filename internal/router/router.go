// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hanmaru/mall-backend/internal/config"
	"github.com/hanmaru/mall-backend/internal/handlers"
	"github.com/hanmaru/mall-backend/internal/middleware"
	"github.com/hanmaru/mall-backend/internal/services"
	"github.com/hanmaru/mall-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	imageGenService := services.NewImageGenService(cfg)

	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db)
	productService := services.NewProductService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(productService)
	adminHandler := handlers.NewAdminHandler(adminService)
	imageHandler := handlers.NewImageHandler(storageService, imageGenService)

	// Session tokens come from the identity provider; set the shared secret
	// used to verify them.
	utils.SetSessionSecret(cfg.Auth.SessionSecret)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Catalog routes (storefront, public)
		products := v1.Group("/products")
		{
			products.GET("", productHandler.SearchProducts)
			products.GET("/:id", productHandler.GetProduct)
		}

		// Cart routes (members only; guests keep their cart client-side)
		cart := v1.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCartItems)
			cart.GET("/count", cartHandler.GetCartItemCount)
			cart.POST("", cartHandler.AddToCart)
			cart.PUT("/:id", cartHandler.UpdateCartItem)
			cart.DELETE("/:id", cartHandler.RemoveCartItem)
		}

		// Order routes
		orders := v1.Group("/orders")
		{
			// Checkout accepts both members and guests
			orders.POST("", middleware.CheckoutRateLimit(), middleware.OptionalAuth(), orderHandler.CreateOrder)
			orders.POST("/guest-lookup", orderHandler.GetGuestOrder)

			protected := orders.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("", orderHandler.GetOrders)
				protected.GET("/:id", orderHandler.GetOrder)
			}
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		admin.Use(middleware.AdminRequired(cfg.Auth.AdminRole))
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)

			adminOrders := admin.Group("/orders")
			{
				adminOrders.GET("", adminHandler.ListOrders)
				adminOrders.GET("/:id", adminHandler.GetOrder)
				adminOrders.PUT("/:id/status", adminHandler.UpdateOrderStatus)
				adminOrders.PUT("/:id/tracking", adminHandler.AssignTracking)
				adminOrders.DELETE("/:id/tracking", adminHandler.RemoveTracking)
				adminOrders.PUT("/:id/delivered", adminHandler.MarkDelivered)
				adminOrders.POST("/tracking/bulk", adminHandler.BulkAssignTracking)
			}

			adminProducts := admin.Group("/products")
			{
				adminProducts.GET("", productHandler.AdminSearchProducts)
				adminProducts.GET("/:id", productHandler.AdminGetProduct)
				adminProducts.POST("", productHandler.CreateProduct)
				adminProducts.PUT("/:id", productHandler.UpdateProduct)
				adminProducts.DELETE("/:id", productHandler.DeleteProduct)
				adminProducts.POST("/images", middleware.UploadRateLimit(), imageHandler.UploadImages)
				adminProducts.DELETE("/images", imageHandler.DeleteImage)
				adminProducts.POST("/generate-image", middleware.UploadRateLimit(), imageHandler.GenerateImage)
			}
		}
	}

	return r
}
