package cache

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// CachingGeocoder consults a GeocodeCache before the wrapped geocoder and
// stores every address it resolves. Misses are not cached.
type CachingGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
}

func NewCachingGeocoder(next ports.Geocoder, cache ports.GeocodeCache) (*CachingGeocoder, error) {
	if next == nil {
		return nil, errors.New("caching geocoder: next geocoder is nil")
	}
	return &CachingGeocoder{next: next, cache: cache}, nil
}

func (g *CachingGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	key := domain.NormalizeAddress(address)

	if g.cache != nil && key != "" {
		hits, err := g.cache.GetMany(ctx, []string{key})
		if err != nil {
			return domain.Coordinates{}, false, fmt.Errorf("caching geocoder: read cache: %w", err)
		}
		if c, ok := hits[key]; ok {
			return c, true, nil
		}
	}

	c, found, err := g.next.Geocode(ctx, address)
	if err != nil || !found {
		return c, found, err
	}

	if g.cache != nil && key != "" {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{key: c}); err != nil {
			obs.Logger(ctx).Warn("geocode cache write failed", zap.String("address", key), zap.Error(err))
		}
	}
	return c, true, nil
}
