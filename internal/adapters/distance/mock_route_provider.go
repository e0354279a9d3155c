package distance

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"time"

	"go.uber.org/atomic"
)

type MockLeg struct {
	From, To domain.Coordinates
	Meters   float64
	Seconds  float64
	// Geometry defaults to a straight [From, To] line when nil.
	Geometry domain.Geometry
	// Fail makes the pair unreachable.
	Fail bool
	// Delay is waited before answering; a cancelled ctx makes the pair unreachable.
	Delay time.Duration
}

type mockKey struct {
	from, to domain.Coordinates
}

// MockRouteProvider answers legs from a fixed table. Unknown pairs are unreachable.
type MockRouteProvider struct {
	legs  map[mockKey]MockLeg
	calls atomic.Int64
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[mockKey]MockLeg, len(legs))
	for _, l := range legs {
		m[mockKey{from: l.From, to: l.To}] = l
	}
	return &MockRouteProvider{legs: m}
}

// Calls returns how many times GetLeg was invoked.
func (p *MockRouteProvider) Calls() int64 { return p.calls.Load() }

func (p *MockRouteProvider) GetLeg(ctx context.Context, origin, destination domain.Coordinates) ports.LegResult {
	p.calls.Inc()

	l, ok := p.legs[mockKey{from: origin, to: destination}]
	if !ok || l.Fail {
		return ports.UnreachableLeg()
	}

	if l.Delay > 0 {
		timer := time.NewTimer(l.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ports.UnreachableLeg()
		case <-timer.C:
		}
	}

	geometry := l.Geometry
	if geometry == nil {
		geometry = domain.Geometry{origin, destination}
	}

	return ports.LegResult{
		DistanceMeters:  l.Meters,
		DurationSeconds: l.Seconds,
		Geometry:        geometry,
	}
}
