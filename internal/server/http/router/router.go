package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/server/http/handlers"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/admin/login", authHandler.AdminLogin)
	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", catalogHandler.Get)

	customer := api.Group("")
	customer.Use(middleware.AuthRequired(facade))

	cart := customer.Group("/cart")
	cart.GET("", cartHandler.Get)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items", cartHandler.UpdateItem)
	cart.DELETE("/items", cartHandler.RemoveItem)
	cart.POST("/promo", cartHandler.ApplyPromo)
	cart.DELETE("/promo", cartHandler.RemovePromo)

	checkout := customer.Group("/checkout")
	checkout.POST("", checkoutHandler.Start)
	checkout.GET("/:id", checkoutHandler.Get)
	checkout.PATCH("/:id/fields", checkoutHandler.EditFields)
	checkout.PUT("/:id/payment-method", checkoutHandler.SelectPaymentMethod)
	checkout.POST("/:id/next", checkoutHandler.Next)
	checkout.POST("/:id/back", checkoutHandler.Back)
	checkout.POST("/:id/submit", checkoutHandler.Submit)

	customer.GET("/orders", orderHandler.List)
	customer.GET("/orders/:id", orderHandler.Get)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuthRequired(facade), middleware.AdminRequired(facade))
	admin.GET("/orders", adminHandler.Orders)
	admin.GET("/orders/:id", adminHandler.Order)

	return engine
}
