package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Host        string
	Port        string
	LogLevel    string
	FrontendURL string

	SerpAPIKey       string
	OpenRouterAPIKey string
	OpenRouterModel  string

	RecencyDays int
}

// Load reads an optional .env file and then the process environment.
// Missing required keys are reported together.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Host:        "0.0.0.0",
		Port:        "8000",
		LogLevel:    "info",
		FrontendURL: "http://localhost:3000",
		RecencyDays: 15,
	}

	if v := os.Getenv("API_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.FrontendURL = v
	}
	if v := os.Getenv("RECENCY_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return cfg, fmt.Errorf("invalid RECENCY_DAYS: %q", v)
		}
		cfg.RecencyDays = days
	}

	cfg.SerpAPIKey = os.Getenv("SERPAPI_KEY")
	cfg.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")
	cfg.OpenRouterModel = os.Getenv("OPENROUTER_MODEL")

	var missing []string
	if cfg.SerpAPIKey == "" {
		missing = append(missing, "SERPAPI_KEY")
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
