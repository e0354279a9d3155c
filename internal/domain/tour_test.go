package domain

import (
	"math"
	"testing"
)

func TestTourValidate(t *testing.T) {
	tests := []struct {
		name    string
		tour    Tour
		n       int
		wantErr bool
	}{
		{name: "valid", tour: Tour{0, 2, 1}, n: 3},
		{name: "single", tour: Tour{0}, n: 1},
		{name: "wrong length", tour: Tour{0, 1}, n: 3, wantErr: true},
		{name: "wrong start", tour: Tour{1, 0, 2}, n: 3, wantErr: true},
		{name: "duplicate", tour: Tour{0, 1, 1}, n: 3, wantErr: true},
		{name: "out of range", tour: Tour{0, 1, 5}, n: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tour.Validate(tt.n)
			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %v", tt.tour)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTourDistance(t *testing.T) {
	m := DistanceMatrix{
		{0, 5, 9},
		{5, 0, 3},
		{9, 3, 0},
	}

	if got := (Tour{0, 1, 2}).Distance(m); got != 8 {
		t.Fatalf("distance = %v, want 8", got)
	}
	if got := (Tour{0, 2, 1}).Distance(m); got != 12 {
		t.Fatalf("distance = %v, want 12", got)
	}
}

func TestNewDistanceMatrix(t *testing.T) {
	m := NewDistanceMatrix(3)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				if m[i][j] != 0 || !m.Reachable(i, j) {
					t.Errorf("diagonal [%d][%d] = %v, want 0", i, j, m[i][j])
				}
				continue
			}
			if !math.IsInf(m[i][j], 1) || m.Reachable(i, j) {
				t.Errorf("cell [%d][%d] = %v, want +Inf", i, j, m[i][j])
			}
		}
	}

	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}
}

func TestDistanceMatrixValidate(t *testing.T) {
	tests := []struct {
		name string
		m    DistanceMatrix
	}{
		{name: "empty", m: DistanceMatrix{}},
		{name: "ragged", m: DistanceMatrix{{0, 1}, {1}}},
		{name: "nan", m: DistanceMatrix{{0, math.NaN()}, {1, 0}}},
		{name: "negative", m: DistanceMatrix{{0, -1}, {1, 0}}},
		{name: "diagonal", m: DistanceMatrix{{1, 1}, {1, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.m.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewGeometryMatrix(t *testing.T) {
	g := NewGeometryMatrix(2)

	if g[0][0] == nil || len(g[0][0]) != 0 {
		t.Errorf("diagonal geometry should be empty and non-nil, got %v", g[0][0])
	}
	if g[0][1] != nil {
		t.Errorf("off-diagonal geometry should start nil, got %v", g[0][1])
	}
}
