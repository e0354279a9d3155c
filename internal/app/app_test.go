package app

import (
	"context"
	"delivery-route-optimizer/internal/adapters/distance"
	"delivery-route-optimizer/internal/config"
	"delivery-route-optimizer/internal/domain"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		RoutingProvider:         config.ProviderOSRM,
		RoutingBaseURL:          baseURL,
		RoutingProfile:          "driving",
		RoutingTimeout:          time.Second,
		FuelPrice:               1.75,
		FuelConsumptionPer100Km: 8,
		MaxWaypoints:            13,
		SearchBound:             config.BoundSoFar,
		LegCache:                config.CacheNone,
		LegCacheTTL:             time.Hour,
	}
}

func newOSRMStub(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":1500,"duration":120,
			"geometry":{"type":"LineString","coordinates":[[37.617,55.755],[37.64,55.76]]}}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

var (
	from = domain.Coordinates{Lon: 37.617, Lat: 55.755}
	to   = domain.Coordinates{Lon: 37.64, Lat: 55.76}
)

func TestNewRouteProviderWithoutCache(t *testing.T) {
	srv, _ := newOSRMStub(t)

	provider, closeFn, err := NewRouteProvider(context.Background(), testConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	if _, ok := provider.(*distance.OSRMRouteProvider); !ok {
		t.Fatalf("provider = %T, want *distance.OSRMRouteProvider", provider)
	}
}

func TestNewRouteProviderSQLiteCache(t *testing.T) {
	srv, hits := newOSRMStub(t)
	cfg := testConfig(srv.URL)
	cfg.LegCache = config.CacheSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "cache", "legs.db")

	provider, closeFn, err := NewRouteProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	for i := 0; i < 3; i++ {
		if leg := provider.GetLeg(context.Background(), from, to); !leg.OK() || leg.DistanceMeters != 1500 {
			t.Fatalf("call %d: leg = %+v", i, leg)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("upstream hits = %d, want 1", hits.Load())
	}
}

func TestNewRouteProviderRedisCache(t *testing.T) {
	srv, hits := newOSRMStub(t)
	mr := miniredis.RunT(t)
	cfg := testConfig(srv.URL)
	cfg.LegCache = config.CacheRedis
	cfg.RedisAddr = mr.Addr()

	provider, closeFn, err := NewRouteProvider(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	provider.GetLeg(context.Background(), from, to)
	provider.GetLeg(context.Background(), from, to)

	if hits.Load() != 1 {
		t.Fatalf("upstream hits = %d, want 1", hits.Load())
	}
	if len(mr.Keys()) != 1 {
		t.Fatalf("redis keys = %v", mr.Keys())
	}
}

func TestNewRouteOptimizer(t *testing.T) {
	srv, _ := newOSRMStub(t)
	cfg := testConfig(srv.URL)
	cfg.SearchBound = config.BoundMinEntry

	opt, closeFn, err := NewRouteOptimizer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	lat0, lon0, lat1, lon1 := from.Lat, from.Lon, to.Lat, to.Lon
	route, err := opt.Optimize(context.Background(), []domain.WaypointInput{
		{Label: "Depot", Lat: &lat0, Lon: &lon0},
		{Label: "A", Lat: &lat1, Lon: &lon1},
	})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if route.TotalDistanceKm != 1.5 {
		t.Fatalf("total = %v, want 1.5", route.TotalDistanceKm)
	}
}

func TestNewRouteOptimizerRejectsUnknownBound(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.SearchBound = "mst"

	if _, _, err := NewRouteOptimizer(context.Background(), cfg); err == nil {
		t.Fatal("expected error")
	}
}
