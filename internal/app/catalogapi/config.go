package catalogapi

import (
	"os"
	"strings"
)

// Config carries environment-driven settings for the catalog API process.
type Config struct {
	Port    string
	CSVPath string
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() Config {
	return Config{
		Port:    envDefault("PORT", "8081"),
		CSVPath: envDefault("CARDS_CSV", "data/pioneers.csv"),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
