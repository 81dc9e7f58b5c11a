// Package config loads engine settings from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings.
type Config struct {
	Port string

	RedisURL      string
	RedisPassword string

	// Postgres DSN for hit-rate profiles. Empty disables the database
	// fallback tier.
	HitRateDB string

	DefaultLeague string

	// Arbitrage scan worker
	ScanInterval time.Duration
	ScanMode     string
	MinArbPct    float64

	// Vendor odds API (per-book fetch path)
	QuoteSource      string
	OddsAPIBase      string
	OddsAPIKey       string
	Books            []string
	FetchConcurrency int
	FetchTimeout     time.Duration
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		Port:          getEnv("PORT", "8086"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		HitRateDB:     getEnv("HIT_RATE_DB_URL", ""),
		DefaultLeague: getEnv("DEFAULT_LEAGUE", "mlb"),

		ScanInterval: getEnvDuration("SCAN_INTERVAL", 30*time.Second),
		ScanMode:     getEnv("SCAN_MODE", "pre_match"),
		MinArbPct:    getEnvFloat("MIN_ARB_PCT", 0.5),

		QuoteSource:      getEnv("QUOTE_SOURCE", "redis"),
		OddsAPIBase:      getEnv("ODDS_API_BASE", "https://data.oddsblaze.com/v1"),
		OddsAPIKey:       getEnv("ODDS_API_KEY", ""),
		Books:            getEnvList("BOOKS", "draftkings,fanduel,betmgm,caesars,espn_bet"),
		FetchConcurrency: getEnvInt("FETCH_CONCURRENCY", 5),
		FetchTimeout:     getEnvDuration("FETCH_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
