package main

import (
	"rewear-service/internal/handler"
	mid "rewear-service/internal/middleware"
	"rewear-service/internal/repository"
	"rewear-service/internal/service"
	"rewear-service/pkg/config"
	"rewear-service/pkg/database"
	"rewear-service/pkg/jwtutil"
	"rewear-service/pkg/logger"
	"rewear-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (.env is read inside Load when present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting rewear-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire repositories, services and handlers
	repo := repository.NewRepository(database.GetDB())
	services := service.NewService(repo, appConfig)
	h := handler.NewHandler(services)

	// Initialize Echo instance
	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics and health endpoints
	e.GET("/metrics", prometheus.HandlerFunc())
	e.GET("/health", h.Health)

	// Auth routes
	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	e.GET("/api/auth/me", h.Me, mid.AuthMiddleware)
	e.PUT("/api/auth/me", h.UpdateMe, mid.AuthMiddleware)
	e.PUT("/api/auth/password", h.ChangePassword, mid.AuthMiddleware)

	// Item routes - reads are public, writes require a session token
	e.GET("/api/items", h.ListItems, mid.OptionalAuthMiddleware)
	e.GET("/api/items/:id", h.GetItem)
	e.POST("/api/items", h.CreateItem, mid.AuthMiddleware)
	e.PUT("/api/items/:id", h.UpdateItem, mid.AuthMiddleware)
	e.DELETE("/api/items/:id", h.DeleteItem, mid.AuthMiddleware)

	// Admin moderation routes - role is enforced in the service layer
	adminAPI := e.Group("/api/admin", mid.AuthMiddleware)
	adminAPI.GET("/items", h.ModerationQueue)
	adminAPI.POST("/items/:id/approve", h.ApproveItem)
	adminAPI.POST("/items/:id/reject", h.RejectItem)

	// Wishlist routes
	wishlistAPI := e.Group("/api/wishlist", mid.AuthMiddleware)
	wishlistAPI.GET("", h.GetWishlist)
	wishlistAPI.POST("", h.AddToWishlist)
	wishlistAPI.DELETE("/:item_id", h.RemoveFromWishlist)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
