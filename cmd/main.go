package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/MarcsonSantos/lu-estilo/internal/handler"
	mid "github.com/MarcsonSantos/lu-estilo/internal/middleware"
	"github.com/MarcsonSantos/lu-estilo/internal/order"
	"github.com/MarcsonSantos/lu-estilo/internal/repository"
	"github.com/MarcsonSantos/lu-estilo/pkg/config"
	"github.com/MarcsonSantos/lu-estilo/pkg/database"
	"github.com/MarcsonSantos/lu-estilo/pkg/logger"
	"github.com/MarcsonSantos/lu-estilo/pkg/security"
	"github.com/MarcsonSantos/lu-estilo/pkg/twilio"
	"github.com/MarcsonSantos/lu-estilo/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("lu-estilo")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting lu-estilo API",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.Connect(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire services
	hasher := security.NewPasswordHasher(appConfig.Hash.BcryptCost)
	tokens := security.NewTokenManager(&appConfig.JWT)
	notifier := twilio.NewClient(&appConfig.Twilio)

	users := repository.NewUserRepository(db)
	clients := repository.NewClientRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)
	engine := order.NewEngine(db)

	guard := mid.NewGuard(tokens, users)
	authHandler := handler.NewAuthHandler(users, hasher, tokens, appConfig.Pagination)
	clientHandler := handler.NewClientHandler(clients, hasher, appConfig.Pagination)
	productHandler := handler.NewProductHandler(products, appConfig.Pagination)
	orderHandler := handler.NewOrderHandler(engine, orders, appConfig.Pagination)
	notificationHandler := handler.NewNotificationHandler(notifier)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(mid.MetricsMiddleware)

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.Health)

	// Auth routes; register, login and refresh are unauthenticated
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.GET("/users", authHandler.ListUsers, guard.Authenticate)
	auth.GET("/user", authHandler.GetUser, guard.Authenticate)

	// Client routes; registration creates the backing user as well
	clientAPI := e.Group("/clients")
	clientAPI.POST("", clientHandler.Create)
	clientAPI.GET("", clientHandler.List, guard.Authenticate)
	clientAPI.GET("/:id", clientHandler.Get, guard.Authenticate)
	clientAPI.PUT("/:id", clientHandler.Update, guard.Authenticate)
	clientAPI.DELETE("/:id", clientHandler.Delete, guard.Authenticate)

	// Product routes; reads open to authenticated users, writes admin-only
	productAPI := e.Group("/products", guard.Authenticate)
	productAPI.GET("", productHandler.List)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.POST("", productHandler.Create)
	productAPI.PUT("/:id", productHandler.Update)
	productAPI.DELETE("/:id", productHandler.Delete)

	// Order routes
	orderAPI := e.Group("/orders", guard.Authenticate)
	orderAPI.POST("", orderHandler.Create)
	orderAPI.GET("", orderHandler.List)
	orderAPI.GET("/:id", orderHandler.Get)
	orderAPI.PUT("/:id", orderHandler.Update)
	orderAPI.DELETE("/:id", orderHandler.Delete)

	// Notification routes
	e.POST("/notifications/send", notificationHandler.Send, guard.Authenticate)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
