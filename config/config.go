package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the storefront client reads from the environment
type Config struct {
	// APIBaseURL is the root of the storefront REST API
	APIBaseURL string
	// HTTPTimeout bounds every API request
	HTTPTimeout time.Duration
	// StoreDir is where the file-backed local store keeps its records
	StoreDir string
	// RedisAddr, when set, switches the local store to Redis
	RedisAddr string
	// LogLevel is a logrus level name
	LogLevel string
}

// Load reads configuration from a .env file when present, then from the
// environment, applying defaults for anything unset
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := &Config{
		APIBaseURL: getEnv("STOREFRONT_API_URL", "http://localhost:6001/api"),
		RedisAddr:  os.Getenv("STOREFRONT_REDIS_ADDR"),
		LogLevel:   getEnv("STOREFRONT_LOG_LEVEL", "info"),
	}

	timeout := getEnv("STOREFRONT_HTTP_TIMEOUT", "10s")
	parsed, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = parsed

	cfg.StoreDir = os.Getenv("STOREFRONT_STORE_DIR")
	if cfg.StoreDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.StoreDir = filepath.Join(home, ".storefront")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
