package repositories

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type waypointRecord struct {
	Label string   `json:"label"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
}

// JSONWaypointSource reads waypoints from a JSON file holding an array of
// {"label", "lat", "lon"} objects. The first entry is the depot.
type JSONWaypointSource struct {
	Path string
}

func NewJSONWaypointSource(path string) *JSONWaypointSource {
	return &JSONWaypointSource{Path: path}
}

// Load waypoints from the file. Coordinates are passed through unvalidated
// so that the optimizer reports missing or out-of-range values uniformly.
func (s *JSONWaypointSource) LoadWaypoints(ctx context.Context) ([]domain.WaypointInput, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("load waypoints: path is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load waypoints: %w", err)
	}

	bytes, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load waypoints: read %q: %w", s.Path, err)
	}

	var records []waypointRecord
	if err := json.Unmarshal(bytes, &records); err != nil {
		return nil, fmt.Errorf("load waypoints: parse json: %w", err)
	}

	inputs := make([]domain.WaypointInput, 0, len(records))
	for _, r := range records {
		inputs = append(inputs, domain.WaypointInput{
			Label: strings.TrimSpace(r.Label),
			Lat:   r.Lat,
			Lon:   r.Lon,
		})
	}

	return inputs, nil
}
