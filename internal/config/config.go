package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultSummaryCacheTTL = 30 * time.Second

type Config struct {
	AppEnv          string
	Port            string
	DatabaseURL     string
	RedisURL        string
	LogLevel        string
	LogFormat       string
	SummaryCacheTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		SummaryCacheTTL: defaultSummaryCacheTTL,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if raw := os.Getenv("SUMMARY_CACHE_TTL_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("SUMMARY_CACHE_TTL_SECONDS must be an integer: %w", err)
		}
		if seconds < 0 {
			return nil, fmt.Errorf("SUMMARY_CACHE_TTL_SECONDS must not be negative, got %d", seconds)
		}
		cfg.SummaryCacheTTL = time.Duration(seconds) * time.Second
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
