package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"motomarket-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// JWT
	JWT jwt.Config

	// MinIO
	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	// SMTP
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// Catalog
	PageSize int
	CacheTTL time.Duration

	// Guard flags
	FlagTTL        time.Duration
	ReloadCooldown time.Duration
	ReloadDebounce time.Duration
}

// Load reads environment variables into AppConfig. DATABASE_URL is read
// directly by the db package but must be present before startup succeeds.
func Load() (AppConfig, error) {
	if os.Getenv("DATABASE_URL") == "" {
		return AppConfig{}, fmt.Errorf("DATABASE_URL is required")
	}

	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8000"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		JWT: jwt.Config{
			PubPath:  getEnv("JWT_PUBLIC_KEY_PATH", "/app/secrets/jwt_public.pem"),
			Issuer:   getEnv("JWT_ISSUER", "motomarket-auth"),
			Audience: getEnv("JWT_AUDIENCE", "motomarket-users"),
		},

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "listing-images"),
		MinIOUseSSL:    strings.ToLower(getEnv("MINIO_USE_SSL", "false")) == "true",

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),

		PageSize: getEnvInt("CATALOG_PAGE_SIZE", 12),
		CacheTTL: getEnvDuration("CATALOG_CACHE_TTL", time.Minute),

		FlagTTL:        getEnvDuration("GUARD_FLAG_TTL", 30*time.Minute),
		ReloadCooldown: getEnvDuration("RELOAD_COOLDOWN", 5*time.Second),
		ReloadDebounce: getEnvDuration("RELOAD_DEBOUNCE", 100*time.Millisecond),
	}, nil
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
