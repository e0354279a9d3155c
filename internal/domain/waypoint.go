package domain

import (
	"fmt"
	"strings"
)

// A stop to visit. Index 0 of an optimization request is the depot
// and is always the first stop of the tour.
// Waypoints are not modified once an optimization run starts.
type Waypoint struct {
	Label  string
	Coords Coordinates
}

// Unvalidated waypoint as received from a caller. Coordinates are pointers
// so that a missing value can be told apart from 0.
type WaypointInput struct {
	Label string
	Lat   *float64
	Lon   *float64
}

// ToWaypoint validates the input and converts it. idx is the 0-based position
// in the request and is used for the default label and error messages.
func (in WaypointInput) ToWaypoint(idx int) (Waypoint, error) {
	if in.Lat == nil {
		return Waypoint{}, fmt.Errorf("waypoint %d: latitude is required", idx)
	}
	if in.Lon == nil {
		return Waypoint{}, fmt.Errorf("waypoint %d: longitude is required", idx)
	}

	c := Coordinates{Lat: *in.Lat, Lon: *in.Lon}
	if err := c.Validate(); err != nil {
		return Waypoint{}, fmt.Errorf("waypoint %d: %w", idx, err)
	}

	label := strings.TrimSpace(in.Label)
	if label == "" {
		label = fmt.Sprintf("Waypoint %d", idx+1)
	}

	return Waypoint{Label: label, Coords: c}, nil
}
