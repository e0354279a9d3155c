package dto

import "delivery-route-optimizer/internal/domain"

// Coordinates are pointers so a missing value is not mistaken for 0.
type WaypointRequest struct {
	Label string   `json:"label"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
}

type OptimizeRequest struct {
	Waypoints []WaypointRequest `json:"waypoints"`
}

type RouteSegmentResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}

type OptimizeResponse struct {
	Route                []RouteSegmentResponse `json:"route"`
	TotalDistanceKm      float64                `json:"total_distance_km"`
	TotalDurationSeconds float64                `json:"total_duration_seconds"`
	Geometry             [][]float64            `json:"geometry"`
	FuelCost             float64                `json:"fuel_cost"`
	Order                []string               `json:"order"`
	// Always false: routes end at the last stop.
	RoundTrip bool `json:"round_trip"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewOptimizeResponse maps an optimized route to its wire form.
func NewOptimizeResponse(route *domain.OptimizedRoute) OptimizeResponse {
	res := OptimizeResponse{
		Route:                make([]RouteSegmentResponse, 0, len(route.Route)),
		TotalDistanceKm:      route.TotalDistanceKm,
		TotalDurationSeconds: route.TotalDurationSeconds,
		Geometry:             route.Geometry.ToLists(),
		FuelCost:             route.FuelCost,
		Order:                route.Order,
		RoundTrip:            false,
	}
	for _, s := range route.Route {
		res.Route = append(res.Route, RouteSegmentResponse{
			From:       s.From,
			To:         s.To,
			DistanceKm: s.DistanceKm,
		})
	}
	return res
}
