package handlers

import (
	"context"
	"delivery-route-optimizer/internal/adapters/distance"
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/services"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var (
	depot = domain.Coordinates{Lon: 37.617, Lat: 55.755}
	stopA = domain.Coordinates{Lon: 37.64, Lat: 55.76}
	stopB = domain.Coordinates{Lon: 37.6, Lat: 55.74}
)

func newTestHandler(legs []distance.MockLeg) (*OptimizeHandler, *distance.MockRouteProvider) {
	provider := distance.NewMockRouteProvider(legs)
	opt := services.NewRouteOptimizer(provider, services.OptimizerOptions{
		MaxWaypoints:            13,
		FuelPrice:               1.75,
		FuelConsumptionPer100Km: 8,
	})
	return &OptimizeHandler{Optimizer: opt}, provider
}

func allLegs(points []domain.Coordinates, meters func(i, j int) float64) []distance.MockLeg {
	var legs []distance.MockLeg
	for i := range points {
		for j := range points {
			if i != j {
				legs = append(legs, distance.MockLeg{From: points[i], To: points[j], Meters: meters(i, j), Seconds: 60})
			}
		}
	}
	return legs
}

func body(points ...domain.Coordinates) string {
	parts := make([]string, 0, len(points))
	for i, p := range points {
		parts = append(parts, fmt.Sprintf(`{"label":"S%d","lat":%v,"lon":%v}`, i, p.Lat, p.Lon))
	}
	return `{"waypoints":[` + strings.Join(parts, ",") + `]}`
}

func doOptimize(h *OptimizeHandler, method, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/optimize", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var res dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return res
}

func TestOptimizeSuccess(t *testing.T) {
	points := []domain.Coordinates{depot, stopA, stopB}
	// Going to B first is shorter: 0->2 = 1km, 2->1 = 2km.
	km := [][]float64{{0, 5, 1}, {5, 0, 2}, {1, 2, 0}}
	h, _ := newTestHandler(allLegs(points, func(i, j int) float64 { return km[i][j] * 1000 }))

	rec := doOptimize(h, http.MethodPost, body(points...))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var res dto.OptimizeResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if strings.Join(res.Order, ",") != "S0,S2,S1" {
		t.Fatalf("order = %v", res.Order)
	}
	if len(res.Route) != 2 || res.Route[0].To != "S2" || res.Route[1].DistanceKm != 2 {
		t.Fatalf("route = %+v", res.Route)
	}
	if res.TotalDistanceKm != 3 || res.TotalDurationSeconds != 120 {
		t.Fatalf("totals = %v km %v s", res.TotalDistanceKm, res.TotalDurationSeconds)
	}
	if res.FuelCost != 0.42 {
		t.Fatalf("fuel = %v, want 0.42", res.FuelCost)
	}
	if len(res.Geometry) != 3 || res.Geometry[0][0] != depot.Lon || res.Geometry[0][1] != depot.Lat {
		t.Fatalf("geometry = %v", res.Geometry)
	}
	if res.RoundTrip {
		t.Fatal("round_trip must be false")
	}
}

func TestOptimizeMissingLongitudeMakesNoCalls(t *testing.T) {
	h, provider := newTestHandler(allLegs([]domain.Coordinates{depot, stopA}, func(i, j int) float64 { return 1000 }))

	rec := doOptimize(h, http.MethodPost, `{"waypoints":[{"label":"Depot","lat":55.755,"lon":37.617},{"label":"A","lat":55.76}]}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if res := decodeError(t, rec); res.Kind != services.KindInvalidInput || !strings.Contains(res.Error, "longitude") {
		t.Fatalf("error = %+v", res)
	}
	if provider.Calls() != 0 {
		t.Fatalf("provider calls = %d, want 0", provider.Calls())
	}
}

func TestOptimizeBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `waypoints`},
		{name: "unknown field", payload: `{"waypoints":[],"return_to_start":true}`},
		{name: "trailing object", payload: `{"waypoints":[]} {}`},
		{name: "too few waypoints", payload: body(depot)},
		{name: "string latitude", payload: `{"waypoints":[{"lat":"55","lon":37},{"lat":55,"lon":37}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, provider := newTestHandler(nil)

			rec := doOptimize(h, http.MethodPost, tt.payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if res := decodeError(t, rec); res.Kind != services.KindInvalidInput {
				t.Fatalf("kind = %q", res.Kind)
			}
			if provider.Calls() != 0 {
				t.Fatalf("provider calls = %d, want 0", provider.Calls())
			}
		})
	}
}

func TestOptimizeProviderUnavailable(t *testing.T) {
	points := []domain.Coordinates{depot, stopA}
	legs := allLegs(points, func(i, j int) float64 { return 1000 })
	legs[1].Fail = true
	h, _ := newTestHandler(legs)

	rec := doOptimize(h, http.MethodPost, body(points...))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	res := decodeError(t, rec)
	if res.Kind != services.KindProviderUnavailable {
		t.Fatalf("kind = %q", res.Kind)
	}
	if strings.Contains(res.Error, "S0") {
		t.Fatalf("internal detail leaked: %q", res.Error)
	}
}

type failingOptimizer struct{ err error }

func (f failingOptimizer) Optimize(context.Context, []domain.WaypointInput) (*domain.OptimizedRoute, error) {
	return nil, f.err
}

func TestOptimizeInternalErrors(t *testing.T) {
	for _, err := range []error{services.ErrSearchInfeasible, services.ErrAssemblyInconsistent, fmt.Errorf("boom")} {
		h := &OptimizeHandler{Optimizer: failingOptimizer{err: err}}

		rec := doOptimize(h, http.MethodPost, body(depot, stopA))
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%v: status = %d, want 500", err, rec.Code)
		}
		if res := decodeError(t, rec); res.Kind != services.ErrorKind(err) || res.Error != "internal server error" {
			t.Fatalf("%v: error = %+v", err, res)
		}
	}
}

func TestOptimizeMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(nil)

	rec := doOptimize(h, http.MethodGet, "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q", allow)
	}
}
