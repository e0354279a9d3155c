package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Validate reports whether the coordinates are finite and inside WGS84 bounds.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return fmt.Errorf("latitude %v is not a finite number", c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("longitude %v is not a finite number", c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Geometry is a road path as an ordered sequence of coordinates.
// A nil Geometry means "no path known". An empty non-nil one marks a stop routed to itself.
type Geometry []Coordinates

// Return the geometry as [[lon, lat], ...].
func (g Geometry) ToLists() [][]float64 {
	out := make([][]float64, 0, len(g))
	for _, c := range g {
		out = append(out, c.CoordsToList())
	}
	return out
}

// GeometryFromLists converts [[lon, lat], ...] pairs as returned by routing APIs.
func GeometryFromLists(pairs [][]float64) (Geometry, error) {
	out := make(Geometry, 0, len(pairs))
	for i, p := range pairs {
		if len(p) < 2 {
			return nil, fmt.Errorf("geometry point %d: expected [lon, lat], got %d values", i, len(p))
		}
		out = append(out, Coordinates{Lon: p[0], Lat: p[1]})
	}
	return out, nil
}
