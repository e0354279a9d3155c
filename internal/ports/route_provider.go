package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"math"
)

// Road distance, travel duration and path between two locations.
type LegResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        domain.Geometry
}

// UnreachableLeg returns the sentinel for a failed or nonexistent route.
func UnreachableLeg() LegResult {
	return LegResult{DistanceMeters: math.Inf(1)}
}

// OK reports whether the leg carries a usable distance and a non-empty geometry.
func (r LegResult) OK() bool {
	if math.IsInf(r.DistanceMeters, 0) || math.IsNaN(r.DistanceMeters) || r.DistanceMeters < 0 {
		return false
	}
	return len(r.Geometry) > 0
}

// Contract for retrieving a road leg between two coordinates.
//
// Implementations fail softly: any problem (invalid input, transport error,
// timeout, provider-reported failure, no route) yields UnreachableLeg() rather
// than an error. Implementations do not retry and must be safe for concurrent use.
type RouteProvider interface {
	GetLeg(ctx context.Context, origin, destination domain.Coordinates) LegResult
}
