package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/metrics"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"fmt"
	"log"
	"time"
)

// OptimizerOptions configures a RouteOptimizer.
type OptimizerOptions struct {
	// MaxWaypoints limits depot plus stops per request. 0 means MaxSearchWaypoints.
	MaxWaypoints      int
	MatrixConcurrency int
	Bound             BoundStrategy

	FuelPrice               float64
	FuelConsumptionPer100Km float64
}

// RouteOptimizer runs the full pipeline: validate, build matrices, search,
// assemble and price the route.
type RouteOptimizer struct {
	builder *MatrixBuilder
	opts    OptimizerOptions
}

func NewRouteOptimizer(provider ports.RouteProvider, opts OptimizerOptions) *RouteOptimizer {
	if opts.MaxWaypoints <= 0 || opts.MaxWaypoints > MaxSearchWaypoints {
		opts.MaxWaypoints = MaxSearchWaypoints
	}
	if opts.Bound == nil {
		opts.Bound = SoFarBound
	}

	return &RouteOptimizer{
		builder: &MatrixBuilder{Provider: provider, MaxConcurrency: opts.MatrixConcurrency},
		opts:    opts,
	}
}

// Optimize returns the shortest open route through inputs starting at
// inputs[0]. Input is fully validated before any provider call. Errors wrap
// one of the package's sentinel errors; no partial route is ever returned.
func (o *RouteOptimizer) Optimize(ctx context.Context, inputs []domain.WaypointInput) (route *domain.OptimizedRoute, err error) {
	defer obs.Time(ctx, "optimize_route")(&err)

	start := time.Now()
	defer func() {
		kind := ErrorKind(err)
		if kind == "" {
			kind = "ok"
		}
		metrics.OptimizationsTotal.WithLabelValues(kind).Inc()
		metrics.OptimizationDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}()

	waypoints, err := o.validate(inputs)
	if err != nil {
		return nil, err
	}

	m, err := o.builder.Build(ctx, waypoints)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	result, err := Search(m.Distances, SearchOptions{Bound: o.opts.Bound})
	metrics.SearchExpandedNodes.Observe(float64(result.Expanded))
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}
	log.Printf("req_id=%s op=search waypoints=%d expanded=%d total_km=%.3f",
		obs.RequestID(ctx), len(waypoints), result.Expanded, result.TotalDistance)

	route, err = AssembleRoute(result.Tour, m, waypoints)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	route.FuelCost = round2(EstimateFuelCost(route.TotalDistanceKm, o.opts.FuelConsumptionPer100Km, o.opts.FuelPrice))
	return route, nil
}

func (o *RouteOptimizer) validate(inputs []domain.WaypointInput) ([]domain.Waypoint, error) {
	if len(inputs) < 2 {
		return nil, fmt.Errorf("optimize route: at least 2 waypoints are required, got %d: %w", len(inputs), ErrInvalidInput)
	}
	if len(inputs) > o.opts.MaxWaypoints {
		return nil, fmt.Errorf("optimize route: at most %d waypoints are allowed, got %d: %w", o.opts.MaxWaypoints, len(inputs), ErrInvalidInput)
	}

	waypoints := make([]domain.Waypoint, 0, len(inputs))
	for i, in := range inputs {
		wp, err := in.ToWaypoint(i)
		if err != nil {
			return nil, fmt.Errorf("optimize route: %v: %w", err, ErrInvalidInput)
		}
		waypoints = append(waypoints, wp)
	}
	return waypoints, nil
}
