package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	DatabaseURL string

	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	OtpTTL            time.Duration
	OtpResendCooldown time.Duration

	CleanupInterval   time.Duration
	UnverifiedUserTTL time.Duration

	RedisAddr     string
	RedisPassword string

	MongoDBURI      string
	MongoDBPassword string
	MongoDBDatabase string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ACCESS_TOKEN_TTL", "24h")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("OTP_TTL", "10m")
	v.SetDefault("OTP_RESEND_COOLDOWN", "60s")
	v.SetDefault("CLEANUP_INTERVAL", "5m")
	v.SetDefault("UNVERIFIED_USER_TTL", "10m")
	v.SetDefault("MONGODB_DATABASE", "hotelbooking")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:8081")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
}

// LoadConfig reads the process environment. Call godotenv first to pick up
// local env files.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "REDIS_ADDR", "REDIS_PASSWORD",
		"MONGODB_URI", "MONGODB_PASSWORD", "SMTP_HOST", "SMTP_USER", "SMTP_PASS",
		"MAIL_FROM", "CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
	} {
		_ = v.BindEnv(key)
	}

	cfg := &Config{
		Port:                v.GetString("PORT"),
		Environment:         v.GetString("ENVIRONMENT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		AccessTokenTTL:      v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:     v.GetDuration("REFRESH_TOKEN_TTL"),
		OtpTTL:              v.GetDuration("OTP_TTL"),
		OtpResendCooldown:   v.GetDuration("OTP_RESEND_COOLDOWN"),
		CleanupInterval:     v.GetDuration("CLEANUP_INTERVAL"),
		UnverifiedUserTTL:   v.GetDuration("UNVERIFIED_USER_TTL"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		MongoDBURI:          v.GetString("MONGODB_URI"),
		MongoDBPassword:     v.GetString("MONGODB_PASSWORD"),
		MongoDBDatabase:     v.GetString("MONGODB_DATABASE"),
		SMTPHost:            v.GetString("SMTP_HOST"),
		SMTPPort:            v.GetInt("SMTP_PORT"),
		SMTPUser:            v.GetString("SMTP_USER"),
		SMTPPass:            v.GetString("SMTP_PASS"),
		MailFrom:            v.GetString("MAIL_FROM"),
		CloudinaryCloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		CORSOrigins:         splitList(v.GetString("CORS_ORIGINS")),
		RateLimitRPS:        v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:      v.GetInt("RATE_LIMIT_BURST"),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive durations")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) MongoEnabled() bool {
	return c.MongoDBURI != ""
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
