package app

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/adapters/cache"
	"delivery-route-optimizer/internal/adapters/distance"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/platform/db"
	"delivery-route-optimizer/internal/ports"
	"delivery-route-optimizer/internal/services"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// profiledProvider is a RouteProvider that names its routing profile,
// which namespaces cached legs.
type profiledProvider interface {
	ports.RouteProvider
	Profile() string
}

// NewRouteProvider builds the configured provider, wrapped in the configured
// leg cache. The returned close func releases cache connections.
func NewRouteProvider(ctx context.Context, cfg config.Config) (ports.RouteProvider, func(), error) {
	var (
		provider profiledProvider
		err      error
	)
	switch cfg.RoutingProvider {
	case config.ProviderORS:
		provider, err = distance.NewORSRouteProvider(cfg.ORSAPIKey, cfg.RoutingBaseURL, cfg.RoutingProfile, cfg.RoutingTimeout)
	default:
		provider, err = distance.NewOSRMRouteProvider(cfg.RoutingBaseURL, cfg.RoutingProfile, cfg.RoutingTimeout)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("new route provider: %w", err)
	}

	noop := func() {}

	switch cfg.LegCache {
	case config.CacheRedis:
		client, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("new route provider: %w", err)
		}
		legCache := cache.NewRedisLegCache(client, provider.Profile(), cfg.LegCacheTTL)
		return distance.NewCachedRouteProvider(provider, legCache), func() { client.Close() }, nil

	case config.CachePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("new route provider: %w", err)
		}
		if err := cache.InitPostgresSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("new route provider: %w", err)
		}
		legCache := cache.NewSQLLegCache(conn, provider.Profile())
		return distance.NewCachedRouteProvider(provider, legCache), closeDB(conn), nil

	case config.CacheSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("new route provider: create %q: %w", dir, err)
			}
		}
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("new route provider: %w", err)
		}
		if err := cache.InitSQLiteSchema(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("new route provider: %w", err)
		}
		legCache := cache.NewSqliteLegCache(conn, provider.Profile())
		return distance.NewCachedRouteProvider(provider, legCache), closeDB(conn), nil
	}

	return provider, noop, nil
}

func closeDB(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Printf("close leg cache db: %v", err)
		}
	}
}

// NewRouteOptimizer wires the full optimization pipeline from cfg.
func NewRouteOptimizer(ctx context.Context, cfg config.Config) (*services.RouteOptimizer, func(), error) {
	bound, err := services.BoundByName(cfg.SearchBound)
	if err != nil {
		return nil, nil, fmt.Errorf("new route optimizer: %w", err)
	}

	provider, closeFn, err := NewRouteProvider(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("new route optimizer: %w", err)
	}

	log.Printf(
		"route optimizer ready: provider=%s base_url=%s profile=%s cache=%s bound=%s max_waypoints=%d",
		cfg.RoutingProvider, cfg.RoutingBaseURL, cfg.RoutingProfile, cfg.LegCache, cfg.SearchBound, cfg.MaxWaypoints,
	)

	opt := services.NewRouteOptimizer(provider, services.OptimizerOptions{
		MaxWaypoints:            cfg.MaxWaypoints,
		MatrixConcurrency:       cfg.MatrixConcurrency,
		Bound:                   bound,
		FuelPrice:               cfg.FuelPrice,
		FuelConsumptionPer100Km: cfg.FuelConsumptionPer100Km,
	})
	return opt, closeFn, nil
}
