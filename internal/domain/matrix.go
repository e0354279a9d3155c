package domain

import (
	"fmt"
	"math"
)

// Square matrix of road distances in kilometres, indexed [origin][destination].
// The diagonal is 0. An unreachable cell holds +Inf.
type DistanceMatrix [][]float64

// Return an n×n matrix with a zero diagonal and every other cell unreachable.
func NewDistanceMatrix(n int) DistanceMatrix {
	m := make(DistanceMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = math.Inf(1)
			}
		}
	}
	return m
}

func (m DistanceMatrix) Size() int { return len(m) }

// Reachable reports whether the i->j cell holds a usable distance.
func (m DistanceMatrix) Reachable(i, j int) bool {
	d := m[i][j]
	return !math.IsInf(d, 0) && !math.IsNaN(d)
}

// Validate checks the matrix is square with a zero diagonal and no
// NaN or negative cells. +Inf cells are allowed.
func (m DistanceMatrix) Validate() error {
	n := len(m)
	if n == 0 {
		return fmt.Errorf("distance matrix is empty")
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("distance matrix row %d has %d columns, want %d", i, len(row), n)
		}
		for j, d := range row {
			if math.IsNaN(d) {
				return fmt.Errorf("distance matrix cell [%d][%d] is NaN", i, j)
			}
			if d < 0 {
				return fmt.Errorf("distance matrix cell [%d][%d] is negative: %v", i, j, d)
			}
			if i == j && d != 0 {
				return fmt.Errorf("distance matrix diagonal [%d][%d] is %v, want 0", i, j, d)
			}
		}
	}
	return nil
}

// Square matrix of leg geometries indexed [origin][destination].
// Diagonal cells are empty; a nil cell means the leg is unknown.
type GeometryMatrix [][]Geometry

func NewGeometryMatrix(n int) GeometryMatrix {
	m := make(GeometryMatrix, n)
	for i := range m {
		m[i] = make([]Geometry, n)
		m[i][i] = Geometry{}
	}
	return m
}

// Everything the matrix builder learned about a set of waypoints.
// Durations are in seconds and follow the same layout as Distances.
type Matrices struct {
	Distances  DistanceMatrix
	Durations  [][]float64
	Geometries GeometryMatrix
}

func NewMatrices(n int) *Matrices {
	durations := make([][]float64, n)
	for i := range durations {
		durations[i] = make([]float64, n)
	}
	return &Matrices{
		Distances:  NewDistanceMatrix(n),
		Durations:  durations,
		Geometries: NewGeometryMatrix(n),
	}
}
