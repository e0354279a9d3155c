package cache

import (
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// formatCoord rounds to 5 decimals (~1 m) so nearby duplicates share a key.
func formatCoord(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', 5, 64) + "," + strconv.FormatFloat(c.Lat, 'f', 5, 64)
}

// legRecord is the serialized form of a cached leg.
type legRecord struct {
	DistanceMeters  float64     `json:"distance_meters"`
	DurationSeconds float64     `json:"duration_seconds"`
	Geometry        [][]float64 `json:"geometry"`
}

func encodeGeometry(g domain.Geometry) (string, error) {
	b, err := json.Marshal(g.ToLists())
	if err != nil {
		return "", fmt.Errorf("encode geometry: %w", err)
	}
	return string(b), nil
}

func decodeGeometry(raw string) (domain.Geometry, error) {
	var pairs [][]float64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	return domain.GeometryFromLists(pairs)
}

func checkCacheable(leg ports.LegResult) error {
	if !leg.OK() {
		return errors.New("refusing to cache an unreachable leg")
	}
	return nil
}
