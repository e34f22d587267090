package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// OpenWeatherAPIKey authenticates against OpenWeatherMap. Required.
	OpenWeatherAPIKey string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// EventsFile is the path of the JSON document backing the event store.
	EventsFile string

	// Weather cache limits. Zero means unbounded / never expires.
	CacheMaxEntries int
	CacheTTL        time.Duration

	// RefreshInterval enables the periodic weather refresh job when > 0.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cacheTTL, err := getenvDuration("WEATHER_CACHE_TTL", "0")
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = cacheTTL
	cfg.CacheMaxEntries = getenvInt("WEATHER_CACHE_MAX_ENTRIES", 0)

	refresh, err := getenvDuration("REFRESH_INTERVAL", "0")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	cfg.EventsFile = getenvDefault("EVENTS_FILE", "events.json")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
