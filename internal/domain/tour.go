package domain

import "fmt"

// Visiting order as waypoint indices. A tour is an open path: it starts at
// index 0 and does not return to it.
type Tour []int

// Validate checks the tour visits each of the n waypoints exactly once, starting at 0.
func (t Tour) Validate(n int) error {
	if len(t) != n {
		return fmt.Errorf("tour has %d stops, want %d", len(t), n)
	}
	if n == 0 {
		return nil
	}
	if t[0] != 0 {
		return fmt.Errorf("tour starts at %d, want 0", t[0])
	}

	seen := make([]bool, n)
	for pos, idx := range t {
		if idx < 0 || idx >= n {
			return fmt.Errorf("tour position %d: index %d out of range", pos, idx)
		}
		if seen[idx] {
			return fmt.Errorf("tour position %d: index %d visited twice", pos, idx)
		}
		seen[idx] = true
	}
	return nil
}

// Distance sums consecutive legs of the tour in m.
func (t Tour) Distance(m DistanceMatrix) float64 {
	total := 0.0
	for k := 1; k < len(t); k++ {
		total += m[t[k-1]][t[k]]
	}
	return total
}

// Outcome of the route search.
type SearchResult struct {
	Tour          Tour
	TotalDistance float64
	// Number of search frames examined.
	Expanded int
}
