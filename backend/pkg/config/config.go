package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// OpenRouter
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	ModelID           string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8000"),
		Env:               getEnv("ENV", "development"),
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		ModelID:           getEnv("MODEL_ID", "openrouter/horizon-beta"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
// The OpenRouter API key is intentionally not required here: the server
// starts without it and the concept endpoints report the missing key
// per request instead.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.OpenRouterBaseURL == "" {
		return fmt.Errorf("OPENROUTER_BASE_URL is required")
	}
	if c.ModelID == "" {
		return fmt.Errorf("MODEL_ID is required")
	}
	return nil
}

// HasOpenRouterKey reports whether an OpenRouter API key was configured
func (c *Config) HasOpenRouterKey() bool {
	return c.OpenRouterAPIKey != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
