package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting of the dashboard service. It is read once at start.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Strapi backend
	StrapiURL     string
	StrapiTimeout time.Duration

	// Redis session cache (optional)
	RedisURL        string
	SessionCacheTTL time.Duration

	// Activity log database (optional)
	DatabaseURL string

	// Notification fan-out
	KafkaBrokers      []string
	NotificationTopic string

	// Users page notices dismiss on their own after this long; 0 disables it
	UsersNoticeTTL time.Duration

	// Browser origins allowed to call the API with credentials; empty allows any
	AllowedOrigins []string
}

// LoadConfig loads configuration from a .env file (if present) and the environment.
// Precedence: explicit env var > .env file > default.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		LogLevel:          parseLevel(getEnv("LOG_LEVEL", "info")),
		StrapiURL:         strings.TrimRight(getEnv("STRAPI_URL", ""), "/"),
		StrapiTimeout:     parseDuration("STRAPI_TIMEOUT", 30*time.Second),
		RedisURL:          getEnv("REDIS_URL", ""),
		SessionCacheTTL:   parseDuration("SESSION_CACHE_TTL", 5*time.Minute),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		KafkaBrokers:      splitList(getEnv("KAFKA_BROKERS", "")),
		NotificationTopic: getEnv("NOTIFICATION_TOPIC", "dashboard.notifications"),
		UsersNoticeTTL:    parseDuration("USERS_NOTICE_TTL", 4000*time.Millisecond),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.StrapiURL == "" {
		return fmt.Errorf("STRAPI_URL is required")
	}
	if !strings.HasPrefix(c.StrapiURL, "http://") && !strings.HasPrefix(c.StrapiURL, "https://") {
		return fmt.Errorf("STRAPI_URL must be an http(s) URL, got %q", c.StrapiURL)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// bare numbers are milliseconds
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Printf("invalid duration for %s: %s", key, v)
	return def
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
