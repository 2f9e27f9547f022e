package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is read once at
// process start and never mutated afterward.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Provider configuration
	GeminiAPIKey string
	GeminiAPIURL string
	GeminiModel  string

	// Redis configuration (recipe book)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Price comparison source: "mock" (seeded catalog) or "live" (generation)
	PriceSource string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig creates a new Config instance from environment variables. A
// .env file is honored in development; a missing provider key is not a load
// error, each operation degrades to its documented recoverable behavior.
func LoadConfig() (*Config, error) {
	if !IsProduction() {
		// Best effort; the file is optional
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiAPIURL:  os.Getenv("GEMINI_API_URL"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),
		PriceSource:   getEnv("PRICE_SOURCE", "mock"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	// The key can also come from a mounted secret file
	if cfg.GeminiAPIKey == "" {
		if keyFile := os.Getenv("GEMINI_API_KEY_FILE"); keyFile != "" {
			data, err := os.ReadFile(keyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read API key file: %w", err)
			}
			cfg.GeminiAPIKey = strings.TrimSpace(string(data))
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
