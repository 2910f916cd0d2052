package e2e

import (
	"os"
	"strconv"
	"time"

	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

// Config holds the configuration for E2E tests
type Config struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration
	Cleanup  bool
}

// LoadConfig loads E2E test configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		BaseURL:  getEnvOrDefault("SPONSORCTL_E2E_BASE_URL", sponsorapi.DevelopmentBaseURL),
		Email:    os.Getenv("SPONSORCTL_E2E_EMAIL"),
		Password: os.Getenv("SPONSORCTL_E2E_PASSWORD"),
		Timeout:  getTimeoutFromEnv("SPONSORCTL_E2E_TIMEOUT", 30*time.Second),
		Cleanup:  getBoolFromEnv("SPONSORCTL_E2E_CLEANUP", true),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getTimeoutFromEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getBoolFromEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	result, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return result
}
