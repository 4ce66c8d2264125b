package gatewayapp

import (
	"os"
	"strings"
)

// Config carries environment-driven settings for the gateway process.
type Config struct {
	Port           string
	CatalogBaseURL string
	AllowedOrigins []string
}

// LoadConfig reads environment variables and applies defaults. CORS_ORIGINS
// is a comma-separated list; empty means allow all origins.
func LoadConfig() Config {
	cfg := Config{
		Port:           envDefault("PORT", "8080"),
		CatalogBaseURL: envDefault("CATALOG_API_URL", "http://localhost:8081"),
	}
	if raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	return cfg
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
