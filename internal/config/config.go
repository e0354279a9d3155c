package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOSRM = "osrm"
	ProviderORS  = "ors"

	CacheNone     = "none"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
	CacheSQLite   = "sqlite"

	BoundSoFar    = "so-far"
	BoundMinEntry = "min-entry"
)

// Config holds every externally supplied setting of the service.
// Values are read once at startup and treated as constants afterwards.
type Config struct {
	Port string

	RoutingProvider string
	RoutingBaseURL  string
	RoutingProfile  string
	ORSAPIKey       string
	RoutingTimeout  time.Duration

	FuelPrice               float64
	FuelConsumptionPer100Km float64

	MaxWaypoints      int
	MatrixConcurrency int
	SearchBound       string

	LegCache    string
	LegCacheTTL time.Duration
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	DatabaseURL string
	SQLitePath  string
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parse %q as number: %w", key, raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number", key, raw)
	}
	return v, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: parse %q as integer: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: parse %q as duration: %w", key, raw, err)
	}
	return v, nil
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		Port:            Get("PORT", "8080"),
		RoutingProvider: strings.ToLower(Get("ROUTING_PROVIDER", ProviderOSRM)),
		ORSAPIKey:       Get("ORS_API_KEY", ""),
		SearchBound:     strings.ToLower(Get("SEARCH_BOUND", BoundSoFar)),
		LegCache:        strings.ToLower(Get("LEG_CACHE", CacheNone)),
		RedisAddr:       Get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPass:       Get("REDIS_PASS", ""),
		DatabaseURL:     Get("DATABASE_URL", ""),
		SQLitePath:      Get("SQLITE_PATH", "data/legs.db"),
	}

	switch cfg.RoutingProvider {
	case ProviderOSRM:
		cfg.RoutingBaseURL = Get("ROUTING_BASE_URL", "https://router.project-osrm.org")
		cfg.RoutingProfile = Get("ROUTING_PROFILE", "driving")
	case ProviderORS:
		cfg.RoutingBaseURL = Get("ROUTING_BASE_URL", "https://api.openrouteservice.org")
		cfg.RoutingProfile = Get("ROUTING_PROFILE", "driving-car")
		if cfg.ORSAPIKey == "" {
			return Config{}, errors.New("ORS_API_KEY is required when ROUTING_PROVIDER=ors")
		}
	default:
		return Config{}, fmt.Errorf("ROUTING_PROVIDER: unknown provider %q", cfg.RoutingProvider)
	}
	cfg.RoutingBaseURL = strings.TrimRight(cfg.RoutingBaseURL, "/")

	var err error
	if cfg.RoutingTimeout, err = getDuration("ROUTING_TIMEOUT", 12*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RoutingTimeout <= 0 {
		return Config{}, errors.New("ROUTING_TIMEOUT must be positive")
	}

	if cfg.FuelPrice, err = getFloat("FUEL_PRICE", 1.75); err != nil {
		return Config{}, err
	}
	if cfg.FuelConsumptionPer100Km, err = getFloat("FUEL_CONSUMPTION_PER_100KM", 8.0); err != nil {
		return Config{}, err
	}
	if cfg.FuelPrice <= 0 || cfg.FuelConsumptionPer100Km <= 0 {
		return Config{}, errors.New("FUEL_PRICE and FUEL_CONSUMPTION_PER_100KM must be positive")
	}

	if cfg.MaxWaypoints, err = getInt("MAX_WAYPOINTS", 13); err != nil {
		return Config{}, err
	}
	if cfg.MaxWaypoints < 2 || cfg.MaxWaypoints > 64 {
		return Config{}, fmt.Errorf("MAX_WAYPOINTS must be between 2 and 64, got %d", cfg.MaxWaypoints)
	}

	if cfg.MatrixConcurrency, err = getInt("MATRIX_CONCURRENCY", 0); err != nil {
		return Config{}, err
	}
	if cfg.MatrixConcurrency < 0 {
		return Config{}, errors.New("MATRIX_CONCURRENCY must not be negative")
	}

	switch cfg.SearchBound {
	case BoundSoFar, BoundMinEntry:
	default:
		return Config{}, fmt.Errorf("SEARCH_BOUND: unknown bound %q", cfg.SearchBound)
	}

	if cfg.LegCacheTTL, err = getDuration("LEG_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	switch cfg.LegCache {
	case CacheNone, CacheRedis, CacheSQLite:
	case CachePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required when LEG_CACHE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("LEG_CACHE: unknown cache %q", cfg.LegCache)
	}

	return cfg, nil
}
