package distance

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type osrmRouteResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// OSRMRouteProvider implements RouteProvider using the OSRM /route service.
//
// One HTTP request is made per leg with a full-overview GeoJSON geometry.
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session session
	baseURL string
	profile string
}

func NewOSRMRouteProvider(baseURL, profile string, timeout time.Duration) (*OSRMRouteProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}
	if profile == "" {
		profile = "driving"
	}
	if timeout <= 0 {
		return nil, errors.New("OSRM timeout must be positive")
	}

	return &OSRMRouteProvider{
		session: newSession("osrm", timeout, ""),
		baseURL: baseURL,
		profile: profile,
	}, nil
}

// Profile returns the travel profile used in cache keys.
func (o *OSRMRouteProvider) Profile() string { return "osrm:" + o.profile }

func (o *OSRMRouteProvider) GetLeg(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) ports.LegResult {
	if err := validatePair(origin, destination); err != nil {
		return o.session.unreachable(ctx, origin, destination, err)
	}

	start := time.Now()
	leg, err := o.fetchRoute(ctx, origin, destination)
	o.session.observe(start, err == nil)
	if err != nil {
		return o.session.unreachable(ctx, origin, destination, err)
	}

	return leg
}

func (o *OSRMRouteProvider) fetchRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.LegResult, error) {
	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f",
		o.baseURL, o.profile,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)

	req, err := o.session.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.LegResult{}, err
	}

	q := req.URL.Query()
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	req.URL.RawQuery = q.Encode()

	var decoded osrmRouteResponse
	if err := o.session.getJSON(req, &decoded); err != nil {
		return ports.LegResult{}, fmt.Errorf("route request: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.LegResult{}, fmt.Errorf("OSRM error: %s %s", decoded.Code, decoded.Message)
	}

	if len(decoded.Routes) == 0 {
		return ports.LegResult{}, errors.New("no routes returned")
	}

	route := decoded.Routes[0]
	if route.Distance < 0 {
		return ports.LegResult{}, fmt.Errorf("negative distance %v", route.Distance)
	}

	geometry, err := domain.GeometryFromLists(route.Geometry.Coordinates)
	if err != nil {
		return ports.LegResult{}, err
	}
	if len(geometry) == 0 {
		return ports.LegResult{}, errors.New("route has no geometry")
	}

	return ports.LegResult{
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
		Geometry:        geometry,
	}, nil
}
