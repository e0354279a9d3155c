package services

import (
	"delivery-route-optimizer/internal/domain"
	"fmt"
	"math"
	"math/bits"
)

// MaxSearchWaypoints is the largest matrix the search accepts; the visited
// set is a uint64 bitmask.
const MaxSearchWaypoints = 64

// BoundFunc returns a lower bound on the length of any complete tour that
// extends a partial path of length soFar covering the visited set.
// A branch is abandoned once its bound is >= the best complete tour.
type BoundFunc func(soFar float64, visited uint64) float64

// BoundStrategy prepares a BoundFunc for one matrix.
type BoundStrategy func(m domain.DistanceMatrix) BoundFunc

// SoFarBound prunes on the accumulated distance alone.
func SoFarBound(domain.DistanceMatrix) BoundFunc {
	return func(soFar float64, _ uint64) float64 { return soFar }
}

// MinEntryBound adds, for every unvisited waypoint, the cheapest edge that
// can enter it. The bound never overestimates, so it returns the same tour
// as SoFarBound while examining fewer frames.
func MinEntryBound(m domain.DistanceMatrix) BoundFunc {
	n := m.Size()
	minIn := make([]float64, n)
	for j := 0; j < n; j++ {
		minIn[j] = math.Inf(1)
		for i := 0; i < n; i++ {
			if i != j && m.Reachable(i, j) && m[i][j] < minIn[j] {
				minIn[j] = m[i][j]
			}
		}
	}

	all := fullMask(n)
	return func(soFar float64, visited uint64) float64 {
		bound := soFar
		for rest := all &^ visited; rest != 0; rest &= rest - 1 {
			bound += minIn[bits.TrailingZeros64(rest)]
		}
		return bound
	}
}

// BoundByName resolves a configured bound name.
func BoundByName(name string) (BoundStrategy, error) {
	switch name {
	case "", "so-far":
		return SoFarBound, nil
	case "min-entry":
		return MinEntryBound, nil
	default:
		return nil, fmt.Errorf("unknown search bound %q", name)
	}
}

// SearchOptions tunes Search.
type SearchOptions struct {
	// Bound defaults to SoFarBound.
	Bound BoundStrategy
}

type frame struct {
	node    int
	depth   int
	soFar   float64
	visited uint64
}

// Search finds the open path starting at waypoint 0 that visits every
// waypoint once with the smallest total distance.
//
// The search is a depth-first branch and bound over an explicit stack.
// Neighbours are explored in increasing index order and a complete path
// replaces the best only when strictly shorter, so among equal-length tours
// the first one in index order wins. Unreachable edges are never taken.
func Search(m domain.DistanceMatrix, opts SearchOptions) (domain.SearchResult, error) {
	if err := m.Validate(); err != nil {
		return domain.SearchResult{}, fmt.Errorf("search: %v: %w", err, ErrSearchInfeasible)
	}

	n := m.Size()
	if n > MaxSearchWaypoints {
		return domain.SearchResult{}, fmt.Errorf("search: %d waypoints exceeds limit of %d: %w", n, MaxSearchWaypoints, ErrSearchInfeasible)
	}

	strategy := opts.Bound
	if strategy == nil {
		strategy = SoFarBound
	}
	bound := strategy(m)

	var (
		best     = math.Inf(1)
		bestTour domain.Tour
		expanded int
	)

	// path[d] is the node at depth d of the frame being expanded. Frames are
	// popped depth-first, so path[:d] always holds the current frame's ancestors.
	path := make([]int, n)
	stack := []frame{{node: 0, depth: 0, soFar: 0, visited: 1}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		expanded++

		if bound(f.soFar, f.visited) >= best {
			continue
		}
		path[f.depth] = f.node

		if f.depth == n-1 {
			// Strictly shorter, or the bound check above would have pruned it.
			best = f.soFar
			bestTour = append(domain.Tour(nil), path...)
			continue
		}

		// Push in reverse so the lowest index is popped first.
		for next := n - 1; next >= 1; next-- {
			if f.visited&(1<<uint(next)) != 0 || !m.Reachable(f.node, next) {
				continue
			}
			stack = append(stack, frame{
				node:    next,
				depth:   f.depth + 1,
				soFar:   f.soFar + m[f.node][next],
				visited: f.visited | 1<<uint(next),
			})
		}
	}

	if bestTour == nil {
		return domain.SearchResult{Expanded: expanded}, fmt.Errorf("search: no path visits all %d waypoints: %w", n, ErrSearchInfeasible)
	}

	return domain.SearchResult{Tour: bestTour, TotalDistance: best, Expanded: expanded}, nil
}

func fullMask(n int) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(n) - 1
}
