// Package config loads the service configuration from the environment, with
// .env file support for local development.
package config

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config is the fully resolved service configuration.
type Config struct {
	Port    string
	GinMode string

	// SiteURL is the WordPress site under analysis.
	SiteURL string

	// DatabasePath is the sqlite file holding analysis history.
	DatabasePath string

	// External API integration. Empty APIBaseURL disables all three clients.
	APIBaseURL string
	APIKey     string

	// Feature flags for the external integrations.
	PageSpeedEnabled     bool
	SafeBrowsingEnabled  bool
	ContentUpdateEnabled bool

	// Rate limiting and analysis throttling.
	RateLimitPerSecond float64
	RateLimitBurst     float64
	ThrottleMinutes    int

	// Background sweep.
	SweepSchedule   string
	StaleAfterHours int

	DevMode bool
}

// Load reads .env files then the environment. Missing values fall back to
// defaults that work for local development.
func Load() *Config {
	// .env.development wins for local runs, then plain .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}

	return &Config{
		Port:                 getString("PORT", "8082"),
		GinMode:              getString("GIN_MODE", gin.ReleaseMode),
		SiteURL:              getString("SITE_URL", "http://localhost:8080"),
		DatabasePath:         getString("DATABASE_PATH", "beyondseo.db"),
		APIBaseURL:           getString("API_BASE_URL", ""),
		APIKey:               getString("API_KEY", ""),
		PageSpeedEnabled:     getBool("FEATURE_PAGE_SPEED", true),
		SafeBrowsingEnabled:  getBool("FEATURE_SAFE_BROWSING", true),
		ContentUpdateEnabled: getBool("FEATURE_CONTENT_UPDATE", true),
		RateLimitPerSecond:   getFloat("RATE_LIMIT_PER_SECOND", 2),
		RateLimitBurst:       getFloat("RATE_LIMIT_BURST", 5),
		ThrottleMinutes:      getInt("ANALYSIS_THROTTLE_MINUTES", 10),
		SweepSchedule:        getString("SWEEP_SCHEDULE", "0 3 * * *"),
		StaleAfterHours:      getInt("STALE_AFTER_HOURS", 168),
		DevMode:              getBool("DEV_MODE", false),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return cast.ToBool(v)
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return cast.ToInt(v)
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return cast.ToFloat64(v)
}
