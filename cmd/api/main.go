package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/hotelbooking/internal/config"
	"github.com/joshua-takyi/hotelbooking/internal/connect"
	"github.com/joshua-takyi/hotelbooking/internal/container"
	"github.com/joshua-takyi/hotelbooking/internal/helpers"
	"github.com/joshua-takyi/hotelbooking/internal/routes"
	"github.com/shopspring/decimal"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	logger.Info("Starting hotel booking API server", "environment", cfg.Environment)

	decimal.MarshalJSONWithoutQuotes = true
	if err := helpers.RegisterBindingValidations(); err != nil {
		logger.Error("Failed to register validators", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Primary database
	db, err := connect.PostgresConnect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to connect to Postgres", "error", err)
		os.Exit(1)
	}

	// Optional stores
	redisClient, err := connect.RedisConnect(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, caching and OTP cooldown disabled", "error", err)
	}
	mongoClient, err := connect.MongoDBConnect(ctx, cfg)
	if err != nil {
		logger.Warn("MongoDB unavailable, favourites disabled", "error", err)
	}
	cld, err := connect.CloudinaryCredentials(cfg)
	if err != nil {
		logger.Warn("Cloudinary unavailable, avatar upload disabled", "error", err)
	}

	appContainer := container.NewContainer(cfg, logger, db, redisClient, mongoClient, cld)

	if err := appContainer.Postgres.Migrate(); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	if seeded, err := appContainer.Postgres.Seed(ctx); err != nil {
		logger.Error("Failed to seed database", "error", err)
	} else if seeded {
		logger.Info("Seeded sample hotels")
	}
	if appContainer.Mongo != nil {
		if err := appContainer.Mongo.EnsureIndexes(ctx); err != nil {
			logger.Warn("Failed to create MongoDB indexes", "error", err)
		}
	}

	router, limiter := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go appContainer.CleanupService.Run(ctx)

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	limiter.Stop()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis", "error", err)
		}
	}
	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}
	if err := connect.PostgresDisconnect(db); err != nil {
		logger.Error("Error closing Postgres", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
