package cache

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLegCache stores legs as JSON values with a TTL.
type RedisLegCache struct {
	client  *redis.Client
	profile string
	ttl     time.Duration
}

func NewRedisLegCache(client *redis.Client, profile string, ttl time.Duration) *RedisLegCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisLegCache{client: client, profile: profile, ttl: ttl}
}

// OpenRedis returns a client for addr. The connection is verified with PING.
func OpenRedis(ctx context.Context, addr, pass string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("open redis %q: %w", addr, err)
	}
	return client, nil
}

func (r *RedisLegCache) key(origin, destination domain.Coordinates) string {
	return "leg:" + r.profile + ":" + formatCoord(origin) + ":" + formatCoord(destination)
}

func (r *RedisLegCache) Get(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.LegResult, _ bool, err error) {
	defer obs.Time(ctx, "leg.cache.redis.Get")(&err)

	if r.client == nil {
		return ports.LegResult{}, false, errors.New("redis leg cache: client is nil")
	}

	raw, err := r.client.Get(ctx, r.key(origin, destination)).Result()
	if errors.Is(err, redis.Nil) {
		return ports.LegResult{}, false, nil
	}
	if err != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: %w", err)
	}

	var rec legRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: decode: %w", err)
	}

	geometry, err := domain.GeometryFromLists(rec.Geometry)
	if err != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: %w", err)
	}

	return ports.LegResult{
		DistanceMeters:  rec.DistanceMeters,
		DurationSeconds: rec.DurationSeconds,
		Geometry:        geometry,
	}, true, nil
}

func (r *RedisLegCache) Put(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	leg ports.LegResult,
) error {
	if r.client == nil {
		return errors.New("redis leg cache: client is nil")
	}
	if err := checkCacheable(leg); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	b, err := json.Marshal(legRecord{
		DistanceMeters:  leg.DistanceMeters,
		DurationSeconds: leg.DurationSeconds,
		Geometry:        leg.Geometry.ToLists(),
	})
	if err != nil {
		return fmt.Errorf("insert leg cache: encode: %w", err)
	}

	if err := r.client.Set(ctx, r.key(origin, destination), string(b), r.ttl).Err(); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}
	return nil
}
