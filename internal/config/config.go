package config

import (
	"os"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "http://127.0.0.1:8000"

type Config struct {
	// BaseURL is the backend's base address, without a trailing slash.
	BaseURL string
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development.
func Load() Config {
	_ = godotenv.Load()

	c := Config{
		BaseURL: os.Getenv("ARTES_API_BASE"),
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	return c
}
