// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API route groups onto the router group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, cfg)
	SetupDeliveryRoutes(rg, db, cfg)
	SetupAdminRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupCatalogRoutes sets up public product and category routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	imageHandler := handlers.NewImageHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/images", imageHandler.ListByProduct)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/tree", categoryHandler.GetCategoryTree)
		categories.GET("/:id", categoryHandler.GetCategory)
	}
}

// SetupCartRoutes sets up cart routes. All cart routes require
// authentication since carts are bound to user accounts.
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cartService := cart.NewService(
		cart.NewGormStore(db),
		cart.NewGormProductLookup(db),
		cart.NewGormUserLookup(db),
		cfg,
	)
	cartHandler := handlers.NewCartHandler(cartService, cfg)

	carts := rg.Group("/cart")
	carts.Use(middleware.AuthMiddleware(cfg))
	{
		carts.GET("", cartHandler.GetCart)
		carts.POST("", cartHandler.CreateCart)
		carts.POST("/items", cartHandler.AddToCart)
		carts.DELETE("/items/:id", cartHandler.RemoveFromCart)
		carts.DELETE("", cartHandler.ClearCart)
	}
}

// SetupDeliveryRoutes sets up delivery routes for authenticated users
func SetupDeliveryRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	deliveryHandler := handlers.NewDeliveryHandler(db, cfg)

	deliveries := rg.Group("/deliveries")
	deliveries.Use(middleware.AuthMiddleware(cfg))
	{
		deliveries.POST("", deliveryHandler.Create)
		deliveries.GET("", deliveryHandler.List)
		deliveries.GET("/:id", deliveryHandler.Get)
	}
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	imageHandler := handlers.NewImageHandler(db, cfg)
	deliveryHandler := handlers.NewDeliveryHandler(db, cfg)
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		// Product management
		products := admin.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.PUT("/:id/stock", productHandler.AdjustStock)
			products.POST("/:id/images", imageHandler.Upload)
		}

		// Category management
		categories := admin.Group("/categories")
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		// Image management
		admin.DELETE("/images/:id", imageHandler.Delete)

		// Delivery management
		deliveries := admin.Group("/deliveries")
		{
			deliveries.PUT("/:id/status", deliveryHandler.UpdateStatus)
		}

		// User management
		users := admin.Group("/users")
		{
			users.GET("", userAdminHandler.GetUsers)
			users.PUT("/:id/status", userAdminHandler.UpdateUserStatus)
		}
	}
}
