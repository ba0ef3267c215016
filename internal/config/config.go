package config

import (
	"os"
	"time"
)

// Config carries the environment-driven settings so main stays lean.
type Config struct {
	Addr          string
	InventoryURL  string
	WebhookURL    string
	MySQLDSN      string
	RedisAddr     string
	CacheTTL      time.Duration
	ClientTimeout time.Duration
	LogLevel      string
}

// FromEnv builds a Config from environment variables with local-development
// defaults.
func FromEnv() Config {
	return Config{
		Addr:          getEnv("HTTP_ADDR", ":8080"),
		InventoryURL:  getEnv("INVENTORY_API_URL", "http://localhost:3000/vehicles"),
		WebhookURL:    getEnv("WEBHOOK_URL", "http://localhost:3000/vehicles/webhook"),
		MySQLDSN:      getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/dealership?parseTime=true"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:      getDuration("CACHE_TTL", 5*time.Minute),
		ClientTimeout: getDuration("HTTP_CLIENT_TIMEOUT", 5*time.Second),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
