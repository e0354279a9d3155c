package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
)

// Port: a boundary for retrieving the waypoints of an optimization request
// from somewhere other than an HTTP body.
type WaypointSource interface {
	// Return waypoints in request order; index 0 is the depot.
	LoadWaypoints(ctx context.Context) ([]domain.WaypointInput, error)
}
