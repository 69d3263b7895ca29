package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/trainee-dashboard/internal/cache"
	"github.com/SAP-F-2025/trainee-dashboard/internal/config"
	"github.com/SAP-F-2025/trainee-dashboard/internal/events"
	"github.com/SAP-F-2025/trainee-dashboard/internal/handlers"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories/postgres"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories/strapi"
	"github.com/SAP-F-2025/trainee-dashboard/internal/services"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
	"github.com/SAP-F-2025/trainee-dashboard/internal/validator"
	"github.com/SAP-F-2025/trainee-dashboard/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize the activity database (optional)
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	activityRepo := postgres.NewActivityRepository(db)

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, session cache disabled", "error", err)
		}
	}

	// Initialize the event bus
	bus, err := events.NewBus(events.Config{KafkaBrokers: cfg.KafkaBrokers, Logger: slogLogger})
	if err != nil {
		log.Fatalf("Failed to initialize event bus: %v", err)
	}
	busCtx, stopBus := context.WithCancel(context.Background())
	defer stopBus()
	if err := events.LogNotifications(busCtx, bus, cfg.NotificationTopic, slogLogger); err != nil {
		logger.Warn("Failed to subscribe to notifications", "error", err)
	}

	// Initialize repositories
	repo := strapi.NewStrapiRepository(strapi.RepositoryConfig{
		Client: strapi.ClientConfig{
			BaseURL: cfg.StrapiURL,
			Timeout: cfg.StrapiTimeout,
		},
		Activity: activityRepo,
		Logger:   slogLogger,
	})

	// Initialize services
	smConfig := services.DefaultServiceManagerConfig()
	smConfig.SessionCacheTTL = cfg.SessionCacheTTL
	smConfig.UsersNoticeTTL = cfg.UsersNoticeTTL
	smConfig.NotificationTopic = cfg.NotificationTopic

	serviceManager := services.NewServiceManager(repo, cache.NewCacheManager(redisClient), bus, slogLogger, smConfig)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, validator.New(), logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger, handlers.MiddlewareConfig{AllowedOrigins: cfg.AllowedOrigins})
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"backend", cfg.StrapiURL,
			"events", bus.Transport())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown services; this closes the event bus
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}
	stopBus()

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
