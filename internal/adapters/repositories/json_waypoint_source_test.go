package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "waypoints.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestJSONWaypointSourceLoad(t *testing.T) {
	path := writeFile(t, `[
		{"label": " Depot ", "lat": 55.755, "lon": 37.617},
		{"label": "A", "lat": 0, "lon": 0},
		{"lat": 55.76}
	]`)

	inputs, err := NewJSONWaypointSource(path).LoadWaypoints(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(inputs) != 3 {
		t.Fatalf("expected 3 waypoints, got %d", len(inputs))
	}
	if inputs[0].Label != "Depot" || *inputs[0].Lat != 55.755 || *inputs[0].Lon != 37.617 {
		t.Errorf("depot = %+v", inputs[0])
	}
	// Zero is a coordinate, not a missing value.
	if inputs[1].Lat == nil || inputs[1].Lon == nil {
		t.Errorf("waypoint A lost its zero coordinates: %+v", inputs[1])
	}
	if inputs[2].Label != "" || inputs[2].Lon != nil {
		t.Errorf("third waypoint = %+v, want empty label and nil lon", inputs[2])
	}
}

func TestJSONWaypointSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.json")},
		{name: "not an array", path: writeFile(t, `{"label": "Depot"}`)},
		{name: "bad json", path: writeFile(t, `[{"lat": }]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewJSONWaypointSource(tt.path).LoadWaypoints(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
