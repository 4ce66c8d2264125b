package storeapi

import (
	"os"
	"strings"
)

// Config carries environment-driven settings for the store API process.
type Config struct {
	Port        string
	PostgresDSN string
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() Config {
	return Config{
		Port:        envDefault("PORT", "8083"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
