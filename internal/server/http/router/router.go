package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/server/http/handlers"
	"github.com/polkiloo/deliverypro/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DeliveryFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	driverHandler := handlers.NewDriverHandler(facade)
	chatHandler := handlers.NewChatHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/catalog", catalogHandler.Items)
	api.GET("/stores", catalogHandler.Stores)
	api.POST("/payments/classify", catalogHandler.ClassifyCard)

	customer := api.Group("")
	customer.Use(middleware.AuthRequired(facade), middleware.RequireRole(model.RoleCustomer))
	customer.GET("/cart", cartHandler.Get)
	customer.DELETE("/cart", cartHandler.Clear)
	customer.PUT("/cart/items/:id", cartHandler.SetQuantity)
	customer.PUT("/cart/store", cartHandler.SelectStore)
	customer.PUT("/cart/address", cartHandler.SetAddress)
	customer.PUT("/cart/payment", cartHandler.SetPayment)
	customer.GET("/cart/quote", cartHandler.Quote)
	customer.POST("/cart/checkout", cartHandler.Checkout)
	customer.POST("/deliveries", cartHandler.RequestCourier)
	customer.GET("/orders", orderHandler.List)
	customer.GET("/orders/:id", orderHandler.Get)
	customer.GET("/orders/:id/chat", chatHandler.Open)
	customer.POST("/orders/:id/chat", chatHandler.Send)
	customer.DELETE("/orders/:id/chat", chatHandler.Close)

	driver := api.Group("/driver")
	driver.Use(middleware.AuthRequired(facade), middleware.RequireRole(model.RoleDriver))
	driver.PUT("/online", driverHandler.SetOnline)
	driver.GET("/requests", driverHandler.Requests)
	driver.POST("/requests/:id/accept", driverHandler.Accept)
	driver.GET("/deliveries", driverHandler.Deliveries)
	driver.GET("/history", driverHandler.History)
	driver.POST("/deliveries/:id/status", driverHandler.Advance)
	driver.GET("/deliveries/:id/chat", chatHandler.Open)
	driver.POST("/deliveries/:id/chat", chatHandler.Send)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)

	return engine
}
