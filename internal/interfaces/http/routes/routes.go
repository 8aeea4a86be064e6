// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/your-org/shopping-cart-backend/internal/config"
	"github.com/your-org/shopping-cart-backend/internal/interfaces/http/handlers"
	"github.com/your-org/shopping-cart-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API route groups onto the given router group.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupUserRoutes(rg, db, cfg)
	SetupProductRoutes(rg, db, redisClient, cfg)
	SetupCartRoutes(rg, db, cfg)
}

// SetupUserRoutes sets up authentication and account routes
func SetupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	users := rg.Group("/users")
	{
		// Public endpoints
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh", authHandler.RefreshToken)

		// Protected endpoints
		protected := users.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.GetProfile)
			protected.PUT("/me", authHandler.UpdateProfile)
			protected.PUT("/me/password", authHandler.ChangePassword)
		}
	}
}

// SetupProductRoutes sets up product catalog routes. Reads are public,
// writes require an admin token.
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, redisClient, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)

		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(cfg))
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", productHandler.CreateProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// SetupCartRoutes sets up cart and cart item routes
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db)

	carts := rg.Group("/carts")
	carts.Use(middleware.AuthMiddleware(cfg))
	{
		carts.POST("", cartHandler.CreateCart)
		carts.GET("/active/:user_id", cartHandler.GetActiveCart)
		carts.GET("/:id", cartHandler.GetCart)
		carts.DELETE("/:id", cartHandler.DeleteCart)

		// Administrative override of cart fields
		adminOnly := carts.Group("")
		adminOnly.Use(middleware.AdminMiddleware())
		{
			adminOnly.PUT("/:id", cartHandler.UpdateCart)
		}

		items := carts.Group("/:id/items")
		{
			items.GET("", cartHandler.ListItems)
			items.POST("", cartHandler.AddItem)
			items.PUT("/:product_id", cartHandler.UpdateItem)
			items.DELETE("/:product_id", cartHandler.RemoveItem)
			items.DELETE("", cartHandler.ClearItems)
		}
	}
}
