package cache

import (
	"context"
	"database/sql"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
)

// SQLLegCache is a PostgreSQL-backed cache for origin->destination legs.
type SQLLegCache struct {
	DB      *sql.DB
	Profile string
}

func NewSQLLegCache(db *sql.DB, profile string) *SQLLegCache {
	return &SQLLegCache{DB: db, Profile: profile}
}

// Fetch a cached leg for one origin/destination pair.
func (s *SQLLegCache) Get(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.LegResult, _ bool, err error) {
	defer obs.Time(ctx, "leg.cache.sql.Get")(&err)

	if s.DB == nil {
		return ports.LegResult{}, false, errors.New("leg cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds, geometry
    FROM leg_cache
    WHERE profile = $1
        AND origin = $2
        AND destination = $3;
	`

	var meters, seconds float64
	var rawGeometry string
	err = s.DB.QueryRowContext(ctx, q, s.Profile, formatCoord(origin), formatCoord(destination)).
		Scan(&meters, &seconds, &rawGeometry)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.LegResult{}, false, nil
	}
	if err != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}

	geometry, err := decodeGeometry(rawGeometry)
	if err != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: %w", err)
	}

	return ports.LegResult{DistanceMeters: meters, DurationSeconds: seconds, Geometry: geometry}, true, nil
}

// Store a successful leg.
func (s *SQLLegCache) Put(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	leg ports.LegResult,
) error {
	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}
	if err := checkCacheable(leg); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	rawGeometry, err := encodeGeometry(leg.Geometry)
	if err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	q := `
	INSERT INTO leg_cache (profile, origin, destination, distance_meters, duration_seconds, geometry)
    VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (profile, origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		geometry = EXCLUDED.geometry;
	`
	if _, err := s.DB.ExecContext(
		ctx, q,
		s.Profile, formatCoord(origin), formatCoord(destination),
		leg.DistanceMeters, leg.DurationSeconds, rawGeometry,
	); err != nil {
		return fmt.Errorf("insert leg cache: %w", err)
	}

	return nil
}
