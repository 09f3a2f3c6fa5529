// Package config loads the fintrack configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is built once by Load and
// handed to the components that need it.
type Config struct {
	// Application
	ProjectName string
	Debug       bool
	Env         string
	Port        string
	APIBaseURL  string

	// Database
	DatabaseURL string

	// Tokens
	SecretKey                string
	Algorithm                string
	AccessTokenExpireMinutes int

	// Outbound HTTP
	ExchangeRateURL string
	HTTPTimeout     time.Duration
}

// AccessTokenTTL returns the configured token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// Load reads configuration from environment variables, falling back to a
// .env file in the working directory and then to defaults.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		ProjectName:     getEnv("PROJECT_NAME", "Personal Finance Tracker"),
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "8000"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		DatabaseURL:     getEnv("DATABASE_URL", "sqlite:///./finance.db"),
		SecretKey:       getEnv("SECRET_KEY", "your-super-secret-key-change-this-in-production"),
		Algorithm:       strings.ToUpper(getEnv("ALGORITHM", "HS256")),
		ExchangeRateURL: strings.TrimRight(getEnv("EXCHANGE_RATE_URL", "https://api.exchangerate-api.com/v4/latest"), "/"),
	}

	debug, err := parseBool(getEnv("DEBUG", ""), true)
	if err != nil {
		return nil, fmt.Errorf("invalid DEBUG value: %w", err)
	}
	cfg.Debug = debug

	expStr := getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "10080")
	minutes, err := strconv.Atoi(expStr)
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q: must be a positive integer", expStr)
	}
	cfg.AccessTokenExpireMinutes = minutes

	timeoutStr := getEnv("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", timeoutStr, err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", timeout)
	}
	cfg.HTTPTimeout = timeout

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY must not be empty")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(s string, defaultVal bool) (bool, error) {
	if s == "" {
		return defaultVal, nil
	}
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("must be true, false, 1, or 0, got %q", s)
	}
}
