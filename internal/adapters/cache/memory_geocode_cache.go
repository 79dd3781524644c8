package cache

import (
	"apartment-geo-enrich/internal/domain"
	"context"
	"strings"

	"github.com/bluele/gcache"
)

// In-process LRU of geocoded addresses, for runs without a database.
type MemoryGeocodeCache struct {
	lru gcache.Cache
}

func NewMemoryGeocodeCache(size int) *MemoryGeocodeCache {
	if size <= 0 {
		size = 4096
	}
	return &MemoryGeocodeCache{lru: gcache.New(size).LRU().Build()}
}

func (m *MemoryGeocodeCache) GetMany(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, len(addresses))
	for _, a := range uniqueKeys(addresses) {
		v, err := m.lru.Get(a)
		if err != nil {
			continue
		}
		out[a] = v.(domain.Coordinates)
	}
	return out, nil
}

func (m *MemoryGeocodeCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	for addr, c := range results {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if err := m.lru.Set(addr, c); err != nil {
			return err
		}
	}
	return nil
}
