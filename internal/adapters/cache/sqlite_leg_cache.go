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

// SQLite backed cache for origin->destination legs.
// Coordinates are rounded to 5 decimals to form keys.
type SqliteLegCache struct {
	DB      *sql.DB
	Profile string
}

func NewSqliteLegCache(db *sql.DB, profile string) *SqliteLegCache {
	return &SqliteLegCache{DB: db, Profile: profile}
}

// Fetch a cached leg for one origin/destination pair.
func (s *SqliteLegCache) Get(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.LegResult, _ bool, err error) {
	defer obs.Time(ctx, "leg.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return ports.LegResult{}, false, errors.New("leg cache: db is nil")
	}

	q := `
	SELECT
        distance_meters,
        duration_seconds,
        geometry
    FROM leg_cache
    WHERE profile = ?
        AND origin = ?
        AND destination = ?;
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
func (s *SqliteLegCache) Put(
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
	INSERT OR REPLACE INTO leg_cache (
        profile,
        origin,
        destination,
        distance_meters,
        duration_seconds,
        geometry
    )
    VALUES (?, ?, ?, ?, ?, ?);
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
