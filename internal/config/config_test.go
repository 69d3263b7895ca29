package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("STRAPI_URL", "http://cms.local:1337/")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_CACHE_TTL", "90s")
	t.Setenv("USERS_NOTICE_TTL", "2500")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://dashboard.example.tn")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StrapiURL != "http://cms.local:1337" {
		t.Errorf("StrapiURL = %q, trailing slash should be trimmed", cfg.StrapiURL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.SessionCacheTTL != 90*time.Second {
		t.Errorf("SessionCacheTTL = %v", cfg.SessionCacheTTL)
	}
	if cfg.UsersNoticeTTL != 2500*time.Millisecond {
		t.Errorf("UsersNoticeTTL = %v", cfg.UsersNoticeTTL)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://dashboard.example.tn" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Port != "8080" || cfg.NotificationTopic != "dashboard.notifications" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_RequiresBackend(t *testing.T) {
	t.Setenv("STRAPI_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error without STRAPI_URL")
	}

	t.Setenv("STRAPI_URL", "cms.local")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a URL without scheme")
	}
}
