package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/metrics"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"log"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// MatrixBuilder fills distance, duration and geometry matrices by asking the
// provider for every ordered pair of distinct waypoints.
type MatrixBuilder struct {
	Provider ports.RouteProvider
	// MaxConcurrency caps in-flight provider calls. 0 issues every call at once.
	MaxConcurrency int
}

// Build returns complete matrices for waypoints, or an error wrapping
// ErrProviderUnavailable when any pair came back unreachable.
//
// All calls are awaited before returning; partial matrices are never handed out.
// Each goroutine writes only its own [i][j] cell, so no locking is needed.
func (b *MatrixBuilder) Build(ctx context.Context, waypoints []domain.Waypoint) (m *domain.Matrices, err error) {
	defer obs.Time(ctx, "build_matrix")(&err)

	if b.Provider == nil {
		return nil, errors.New("build matrix: provider is nil")
	}

	n := len(waypoints)
	if n < 2 {
		return nil, fmt.Errorf("build matrix: need at least 2 waypoints, got %d: %w", n, ErrInvalidInput)
	}

	m = domain.NewMatrices(n)

	var (
		g        errgroup.Group
		failed   atomic.Bool
		failures atomic.Int64
	)
	if b.MaxConcurrency > 0 {
		g.SetLimit(b.MaxConcurrency)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			g.Go(func() error {
				leg := b.Provider.GetLeg(ctx, waypoints[i].Coords, waypoints[j].Coords)
				if !leg.OK() {
					failed.Store(true)
					failures.Inc()
					return nil
				}

				m.Distances[i][j] = leg.DistanceMeters / 1000
				m.Durations[i][j] = leg.DurationSeconds
				m.Geometries[i][j] = leg.Geometry
				return nil
			})
		}
	}

	// Workers never return an error; failures are tracked through the flag.
	_ = g.Wait()

	pairs := n * (n - 1)
	metrics.MatrixPairsTotal.Add(float64(pairs))
	metrics.MatrixPairFailuresTotal.Add(float64(failures.Load()))

	if failed.Load() {
		fi, fj := firstUnreachable(m.Distances)
		return nil, fmt.Errorf(
			"build matrix: %d of %d pairs unreachable, first %q -> %q: %w",
			failures.Load(), pairs, waypoints[fi].Label, waypoints[fj].Label, ErrProviderUnavailable,
		)
	}

	log.Printf("req_id=%s op=build_matrix waypoints=%d pairs=%d", obs.RequestID(ctx), n, pairs)
	return m, nil
}

func firstUnreachable(m domain.DistanceMatrix) (int, int) {
	for i := range m {
		for j := range m[i] {
			if !m.Reachable(i, j) {
				return i, j
			}
		}
	}
	return 0, 0
}
