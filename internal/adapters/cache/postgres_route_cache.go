package cache

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/db"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Postgres backed cache of successful route elements, shared across machines.
type PostgresRouteCache struct {
	Pool db.Pool
}

func NewPostgresRouteCache(pool db.Pool) *PostgresRouteCache {
	return &PostgresRouteCache{Pool: pool}
}

// Fetch cached elements for one origin and multiple destinations.
func (s *PostgresRouteCache) GetMany(
	ctx context.Context,
	mode domain.TravelMode,
	origin string,
	destinations []string,
) (_ map[string]ports.RouteElement, err error) {
	defer obs.Time(ctx, "route.cache.postgres.GetMany")(&err)

	if s.Pool == nil {
		return nil, errors.New("route cache: pool is nil")
	}

	if origin == "" {
		return nil, errors.New("get route cache: origin must not be empty")
	}

	uniq := uniqueKeys(destinations)
	if len(uniq) == 0 {
		return map[string]ports.RouteElement{}, nil
	}

	q := `
	SELECT destination, distance_meters, duration_seconds
	FROM route_cache
	WHERE mode = $1
		AND origin = $2
		AND destination = ANY($3::text[]);
	`

	rows, err := s.Pool.Query(ctx, q, string(mode), origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.RouteElement, len(uniq))
	for rows.Next() {
		var dest string
		var meters, seconds float64
		if err := rows.Scan(&dest, &meters, &seconds); err != nil {
			return nil, fmt.Errorf("get route cache: scan rows: %w", err)
		}
		out[dest] = ports.RouteElement{
			Status:          ports.StatusOK,
			DistanceMeters:  meters,
			DurationSeconds: seconds,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get route cache: row iteration: %w", err)
	}

	return out, nil
}

// Store successful elements for a single origin in one statement.
// Destinations are written in sorted order.
func (s *PostgresRouteCache) PutMany(
	ctx context.Context,
	mode domain.TravelMode,
	origin string,
	results map[string]ports.RouteElement,
) error {
	if s.Pool == nil {
		return errors.New("route cache: pool is nil")
	}

	if origin == "" {
		return errors.New("insert route cache: origin must not be empty")
	}

	dests := make([]string, 0, len(results))
	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert route cache: empty destination key")
		}
		if r.OK() {
			dests = append(dests, dest)
		}
	}
	if len(dests) == 0 {
		return nil
	}
	sort.Strings(dests)

	meters := make([]float64, len(dests))
	seconds := make([]float64, len(dests))
	for i, d := range dests {
		meters[i] = results[d].DistanceMeters
		seconds[i] = results[d].DurationSeconds
	}

	_, err := s.Pool.Exec(ctx, `
	INSERT INTO route_cache (mode, origin, destination, distance_meters, duration_seconds)
	SELECT $1, $2, t.destination, t.meters, t.seconds
	FROM unnest($3::text[], $4::float8[], $5::float8[]) AS t(destination, meters, seconds)
	ON CONFLICT (mode, origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		cached_at = now();
	`, string(mode), origin, dests, meters, seconds)
	if err != nil {
		return fmt.Errorf("insert route cache origin=%q: %w", origin, err)
	}

	return nil
}
