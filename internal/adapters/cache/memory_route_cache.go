package cache

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/ports"
	"context"

	"github.com/bluele/gcache"
)

// In-process LRU of route elements, keyed by mode, origin and destination.
type MemoryRouteCache struct {
	lru gcache.Cache
}

func NewMemoryRouteCache(size int) *MemoryRouteCache {
	if size <= 0 {
		size = 65536
	}
	return &MemoryRouteCache{lru: gcache.New(size).LRU().Build()}
}

func routeKey(mode domain.TravelMode, origin, destination string) string {
	return string(mode) + "|" + origin + "|" + destination
}

func (m *MemoryRouteCache) GetMany(
	_ context.Context,
	mode domain.TravelMode,
	origin string,
	destinations []string,
) (map[string]ports.RouteElement, error) {
	out := make(map[string]ports.RouteElement, len(destinations))
	for _, d := range uniqueKeys(destinations) {
		v, err := m.lru.Get(routeKey(mode, origin, d))
		if err != nil {
			continue
		}
		out[d] = v.(ports.RouteElement)
	}
	return out, nil
}

func (m *MemoryRouteCache) PutMany(
	_ context.Context,
	mode domain.TravelMode,
	origin string,
	results map[string]ports.RouteElement,
) error {
	for d, r := range results {
		if !r.OK() {
			continue
		}
		if err := m.lru.Set(routeKey(mode, origin, d), r); err != nil {
			return err
		}
	}
	return nil
}
