package distance

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/metrics"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Upper bound on a provider response body; full-overview geometries for a
// single leg stay well below this.
const maxResponseBytes = 8 << 20

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// session is the HTTP plumbing shared by the routing providers.
type session struct {
	name   string
	client *http.Client
	apiKey string
}

func newSession(name string, timeout time.Duration, apiKey string) session {
	return session{
		name:   name,
		client: &http.Client{Timeout: timeout},
		apiKey: apiKey,
	}
}

func (s session) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if s.apiKey != "" {
		req.Header.Set("Authorization", s.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// getJSON performs a single GET and decodes a 200 response into out.
// Any non-200 status is returned as *httpStatusError. There is no retry.
func (s session) getJSON(req *http.Request, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// observe records the outcome of one provider call.
func (s session) observe(start time.Time, ok bool) {
	metrics.ProviderDurationMs.WithLabelValues(s.name).Observe(float64(time.Since(start).Milliseconds()))
	outcome := "ok"
	if !ok {
		outcome = "unreachable"
	}
	metrics.ProviderRequestsTotal.WithLabelValues(s.name, outcome).Inc()
}

// unreachable logs why a leg failed and returns the sentinel.
func (s session) unreachable(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	reason error,
) ports.LegResult {
	log.Printf(
		"req_id=%s op=%s.GetLeg origin=%.6f,%.6f destination=%.6f,%.6f unreachable: %v",
		obs.RequestID(ctx), s.name, origin.Lon, origin.Lat, destination.Lon, destination.Lat, reason,
	)
	return ports.UnreachableLeg()
}

// validatePair rejects malformed coordinates before any request is made.
func validatePair(origin, destination domain.Coordinates) error {
	if err := origin.Validate(); err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	return nil
}
