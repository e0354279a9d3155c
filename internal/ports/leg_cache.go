package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
)

// Persistent store for successful legs keyed by origin/destination coordinates.
type LegCache interface {
	// Get returns the cached leg and true on a hit.
	Get(ctx context.Context, origin, destination domain.Coordinates) (LegResult, bool, error)
	// Put stores a successful leg.
	Put(ctx context.Context, origin, destination domain.Coordinates, leg LegResult) error
}
