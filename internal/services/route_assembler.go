package services

import (
	"delivery-route-optimizer/internal/domain"
	"fmt"
)

// AssembleRoute walks tour and builds the ordered segments, the merged
// polyline and the totals.
//
// Segment distances are rounded to 2 decimals; the total is summed from the
// unrounded legs and rounded once. Every leg after the first drops its first
// coordinate, which repeats the previous leg's last one. Any leg without a
// distance or geometry fails the whole assembly.
func AssembleRoute(tour domain.Tour, m *domain.Matrices, waypoints []domain.Waypoint) (*domain.OptimizedRoute, error) {
	n := len(waypoints)
	if err := tour.Validate(n); err != nil {
		return nil, fmt.Errorf("assemble route: %v: %w", err, ErrAssemblyInconsistent)
	}
	if m == nil || m.Distances.Size() != n || len(m.Geometries) != n || len(m.Durations) != n {
		return nil, fmt.Errorf("assemble route: matrices do not match %d waypoints: %w", n, ErrAssemblyInconsistent)
	}

	route := &domain.OptimizedRoute{
		Route:    make([]domain.RouteSegment, 0, n-1),
		Order:    make([]string, 0, n),
		Tour:     append(domain.Tour(nil), tour...),
		Geometry: domain.Geometry{},
	}
	for _, idx := range tour {
		route.Order = append(route.Order, waypoints[idx].Label)
	}

	total := 0.0
	for k := 1; k < len(tour); k++ {
		from, to := tour[k-1], tour[k]

		if !m.Distances.Reachable(from, to) {
			return nil, fmt.Errorf("assemble route: leg %q -> %q has no distance: %w",
				waypoints[from].Label, waypoints[to].Label, ErrAssemblyInconsistent)
		}
		geometry := m.Geometries[from][to]
		if len(geometry) == 0 {
			return nil, fmt.Errorf("assemble route: leg %q -> %q has no geometry: %w",
				waypoints[from].Label, waypoints[to].Label, ErrAssemblyInconsistent)
		}

		km := m.Distances[from][to]
		total += km
		route.TotalDurationSeconds += m.Durations[from][to]

		route.Route = append(route.Route, domain.RouteSegment{
			From:       waypoints[from].Label,
			To:         waypoints[to].Label,
			DistanceKm: round2(km),
		})

		if k == 1 {
			route.Geometry = append(route.Geometry, geometry...)
		} else {
			route.Geometry = append(route.Geometry, geometry[1:]...)
		}
	}

	route.TotalDistanceKm = round2(total)
	return route, nil
}
