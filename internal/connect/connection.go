package connect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/hotelbooking/internal/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresConnect opens the primary database, retrying while it starts up.
func PostgresConnect(dsn string, log *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetMaxOpenConns(20)
				sqlDB.SetConnMaxLifetime(time.Hour)
				log.Info("postgres connected")
				return db, nil
			}
			err = dbErr
		}
		log.Warn("postgres not ready, retrying", "attempt", i+1, "error", err)
		time.Sleep(time.Duration(500+i*200) * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}

func PostgresDisconnect(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RedisConnect returns nil when no address is configured.
func RedisConnect(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.RedisEnabled() {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// MongoDBConnect returns nil when no URI is configured. A "<password>"
// placeholder in the URI is replaced with MONGODB_PASSWORD.
func MongoDBConnect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	if !cfg.MongoEnabled() {
		return nil, nil
	}
	fullUri := strings.Replace(cfg.MongoDBURI, "<password>", cfg.MongoDBPassword, 1)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fullUri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

func MongoDBDisconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect MongoDB: %w", err)
	}
	return nil
}

// CloudinaryCredentials returns nil when the account is not configured.
func CloudinaryCredentials(cfg *config.Config) (*cloudinary.Cloudinary, error) {
	if !cfg.CloudinaryEnabled() {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return cld, nil
}
