package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/avatarctic/trip-search/configs"
	"github.com/avatarctic/trip-search/internal/application/services"
	"github.com/avatarctic/trip-search/internal/core/ports"
	"github.com/avatarctic/trip-search/internal/infrastructure/db"
	"github.com/avatarctic/trip-search/internal/infrastructure/health"
	"github.com/avatarctic/trip-search/internal/infrastructure/httpserver"
	"github.com/avatarctic/trip-search/internal/infrastructure/identity"
	"github.com/avatarctic/trip-search/internal/infrastructure/memcache"
	"github.com/avatarctic/trip-search/internal/infrastructure/redis"
	"github.com/avatarctic/trip-search/internal/infrastructure/repositories"
	"github.com/avatarctic/trip-search/internal/infrastructure/tripsapi"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting trip search service...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Select cache backend
	var cache ports.Cache
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		cache = redis.NewRedisCache(redisClient, cfg.Cache.KeyPrefix)
		logger.Info("Connected to Redis successfully")
	case config.CacheBackendMemory:
		cache = memcache.New()
		logger.Info("Using in-memory cache backend")
	default:
		logger.Fatalf("Unknown cache backend: %s", cfg.Cache.Backend)
	}

	// Upstream trips provider
	tripsClient, err := tripsapi.NewClient(&tripsapi.Config{
		BaseURL:        cfg.TripsAPI.BaseURL,
		APIKey:         cfg.TripsAPI.APIKey,
		AttemptTimeout: cfg.TripsAPI.AttemptTimeout,
		MaxRetries:     cfg.TripsAPI.MaxRetries,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize trips API client:", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(database, logger)
	savedTripRepo := repositories.NewSavedTripRepository(database, logger)

	// Identity provider is optional; registration is rejected without it.
	var identityProvider ports.IdentityProvider
	if cfg.Auth.MgmtBaseURL != "" {
		identityProvider, err = identity.NewManagementClient(&cfg.Auth, logger)
		if err != nil {
			logger.Fatal("Failed to initialize identity management client:", err)
		}
	} else {
		logger.Warn("Identity management API not configured; user registration disabled")
	}

	// Wire services
	sorter := services.NewTripSorter()
	tripService := services.NewTripService(tripsClient, cache, sorter, cfg.Cache.SearchTTL, logger)
	savedTripService := services.NewSavedTripService(savedTripRepo, tripsClient, cache, cfg.Cache.SavedTripsTTL, logger)
	userService := services.NewUserService(userRepo, identityProvider, logger)

	hcSlice := []ports.HealthChecker{
		health.NewDBHealthChecker(database),
		health.NewCacheHealthChecker(cache),
		health.NewTripsAPIHealthChecker(cfg.TripsAPI.BaseURL),
	}

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	deps := httpserver.ServerDeps{
		TripService:      tripService,
		SavedTripService: savedTripService,
		UserService:      userService,
		HealthCheckers:   hcSlice,
	}

	server := httpserver.NewServer(serverConfig, cfg.Auth.JWTSecret, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	if cache.SupportsShutdown() {
		if err := cache.Shutdown(ctx); err != nil {
			logger.Warn("Failed to shut down cache backend:", err)
		}
	}

	logger.Info("Server exited")
}
