package cache

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	origin      = domain.Coordinates{Lon: 37.617001, Lat: 55.755001}
	destination = domain.Coordinates{Lon: 37.64, Lat: 55.76}
)

func sampleLeg() ports.LegResult {
	return ports.LegResult{
		DistanceMeters:  1234.5,
		DurationSeconds: 99,
		Geometry:        domain.Geometry{origin, {Lon: 37.63, Lat: 55.757}, destination},
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisLegCacheRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisLegCache(client, "osrm:driving", time.Hour)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, origin, destination); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, origin, destination, sampleLeg()); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, origin, destination)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.DistanceMeters != 1234.5 || got.DurationSeconds != 99 || len(got.Geometry) != 3 {
		t.Fatalf("leg = %+v", got)
	}

	key := "leg:osrm:driving:37.61700,55.75500:37.64000,55.76000"
	if !mr.Exists(key) {
		t.Fatalf("expected key %q, have %v", key, mr.Keys())
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}
}

func TestRedisLegCacheDirectional(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisLegCache(client, "osrm:driving", time.Hour)
	ctx := context.Background()

	if err := c.Put(ctx, origin, destination, sampleLeg()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok, _ := c.Get(ctx, destination, origin); ok {
		t.Fatal("reverse direction must not hit")
	}
}

func TestRedisLegCacheExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisLegCache(client, "osrm:driving", time.Minute)
	ctx := context.Background()

	if err := c.Put(ctx, origin, destination, sampleLeg()); err != nil {
		t.Fatalf("put: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, ok, err := c.Get(ctx, origin, destination); err != nil || ok {
		t.Fatalf("expected expired miss, got ok=%v err=%v", ok, err)
	}
}

func TestRedisLegCacheRejectsUnreachable(t *testing.T) {
	_, client := newTestRedis(t)
	c := NewRedisLegCache(client, "osrm:driving", time.Hour)

	if err := c.Put(context.Background(), origin, destination, ports.UnreachableLeg()); err == nil {
		t.Fatal("expected error caching an unreachable leg")
	}
}

func TestRedisLegCacheServerDown(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisLegCache(client, "osrm:driving", time.Hour)
	mr.Close()

	if _, _, err := c.Get(context.Background(), origin, destination); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
