package domain

// Represents a single leg of an optimized route.
// Distance is in kilometres, rounded to 2 decimals for reporting.
type RouteSegment struct {
	From       string
	To         string
	DistanceKm float64
}

// Represents the optimized route for one request.
// An OptimizedRoute is the output of the optimization pipeline and describes the
// ordered legs, the merged road polyline, and aggregate metrics.
// It is immutable planning data and contains no side effects.
//
// Routes are open paths: the vehicle ends at the last stop and does not
// return to the depot.
type OptimizedRoute struct {
	Route                []RouteSegment
	Order                []string
	Tour                 Tour
	Geometry             Geometry
	TotalDistanceKm      float64
	TotalDurationSeconds float64
	FuelCost             float64
}
