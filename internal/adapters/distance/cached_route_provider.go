package distance

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/metrics"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"log"
)

// CachedRouteProvider checks a persistent leg cache before delegating to
// another RouteProvider. Only successful legs are stored.
// Cache errors degrade to a miss and never fail a leg.
type CachedRouteProvider struct {
	inner ports.RouteProvider
	cache ports.LegCache
}

func NewCachedRouteProvider(inner ports.RouteProvider, cache ports.LegCache) *CachedRouteProvider {
	return &CachedRouteProvider{inner: inner, cache: cache}
}

func (c *CachedRouteProvider) GetLeg(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) ports.LegResult {
	if c.cache == nil {
		return c.inner.GetLeg(ctx, origin, destination)
	}

	leg, ok, err := c.cache.Get(ctx, origin, destination)
	if err != nil {
		log.Printf("req_id=%s leg cache read failed: %v", obs.RequestID(ctx), err)
	}
	if err == nil && ok && leg.OK() {
		metrics.LegCacheHitsTotal.Inc()
		return leg
	}
	metrics.LegCacheMissesTotal.Inc()

	leg = c.inner.GetLeg(ctx, origin, destination)
	if !leg.OK() {
		return leg
	}

	if err := c.cache.Put(ctx, origin, destination, leg); err != nil {
		log.Printf("req_id=%s leg cache write failed: %v", obs.RequestID(ctx), err)
	}

	return leg
}
