package notifier

import (
	"os"
	"strings"
)

// Config carries environment-driven settings for the notifier process.
type Config struct {
	Port             string
	StoreBaseURL     string
	SweepCron        string
	TemporalDisabled bool
}

// LoadConfig reads environment variables and applies defaults.
func LoadConfig() Config {
	return Config{
		Port:             envDefault("PORT", "8082"),
		StoreBaseURL:     envDefault("STORE_API_URL", "http://localhost:8083"),
		SweepCron:        strings.TrimSpace(os.Getenv("SWEEP_CRON")),
		TemporalDisabled: isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
