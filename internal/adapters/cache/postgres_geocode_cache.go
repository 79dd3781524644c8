package cache

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/db"
	"apartment-geo-enrich/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Postgres backed cache mapping normalized addresses to coordinates.
type PostgresGeocodeCache struct {
	Pool db.Pool
}

func NewPostgresGeocodeCache(pool db.Pool) *PostgresGeocodeCache {
	return &PostgresGeocodeCache{Pool: pool}
}

// Fetch cached coordinates for the given addresses.
func (s *PostgresGeocodeCache) GetMany(ctx context.Context, addresses []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.postgres.GetMany")(&err)

	if s.Pool == nil {
		return nil, errors.New("geocode cache: pool is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	rows, err := s.Pool.Query(ctx, `
	SELECT address, lon, lat
	FROM geocode_cache
	WHERE address = ANY($1::text[]);
	`, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var addr string
		var lon, lat float64
		if err := rows.Scan(&addr, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store address -> coordinate mappings in one statement, addresses sorted.
func (s *PostgresGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.Pool == nil {
		return errors.New("geocode cache: pool is nil")
	}

	if len(results) == 0 {
		return nil
	}

	addrs := make([]string, 0, len(results))
	for addr := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	lons := make([]float64, len(addrs))
	lats := make([]float64, len(addrs))
	for i, a := range addrs {
		lons[i] = results[a].Lon
		lats[i] = results[a].Lat
	}

	_, err := s.Pool.Exec(ctx, `
	INSERT INTO geocode_cache (address, lon, lat)
	SELECT t.address, t.lon, t.lat
	FROM unnest($1::text[], $2::float8[], $3::float8[]) AS t(address, lon, lat)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		cached_at = now();
	`, addrs, lons, lats)
	if err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	return nil
}
