package distance

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type orsDirectionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSRouteProvider implements RouteProvider using the OpenRouteService
// directions endpoint (/v2/directions/{profile}).
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session session
	baseURL string
	profile string
}

func NewORSRouteProvider(apiKey, baseURL, profile string, timeout time.Duration) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	if profile == "" {
		profile = "driving-car"
	}
	if timeout <= 0 {
		return nil, errors.New("ORS timeout must be positive")
	}

	return &ORSRouteProvider{
		session: newSession("ors", timeout, apiKey),
		baseURL: baseURL,
		profile: profile,
	}, nil
}

func (o *ORSRouteProvider) Profile() string { return "ors:" + o.profile }

func (o *ORSRouteProvider) GetLeg(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) ports.LegResult {
	if err := validatePair(origin, destination); err != nil {
		return o.session.unreachable(ctx, origin, destination, err)
	}

	start := time.Now()
	leg, err := o.fetchDirections(ctx, origin, destination)
	o.session.observe(start, err == nil)
	if err != nil {
		return o.session.unreachable(ctx, origin, destination, err)
	}

	return leg
}

func formatLonLat(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lat, 'f', 6, 64)
}

func (o *ORSRouteProvider) fetchDirections(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.LegResult, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	req, err := o.session.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.LegResult{}, err
	}

	q := req.URL.Query()
	q.Set("start", formatLonLat(origin))
	q.Set("end", formatLonLat(destination))
	req.URL.RawQuery = q.Encode()

	var decoded orsDirectionsResponse
	if err := o.session.getJSON(req, &decoded); err != nil {
		return ports.LegResult{}, fmt.Errorf("directions request: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.LegResult{}, errors.New("no routes returned")
	}

	feature := decoded.Features[0]
	summary := feature.Properties.Summary
	if summary.Distance < 0 {
		return ports.LegResult{}, fmt.Errorf("negative distance %v", summary.Distance)
	}

	geometry, err := domain.GeometryFromLists(feature.Geometry.Coordinates)
	if err != nil {
		return ports.LegResult{}, err
	}
	if len(geometry) == 0 {
		return ports.LegResult{}, errors.New("route has no geometry")
	}

	return ports.LegResult{
		DistanceMeters:  summary.Distance,
		DurationSeconds: summary.Duration,
		Geometry:        geometry,
	}, nil
}
