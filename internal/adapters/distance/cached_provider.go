package distance

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// CachedProvider answers route batches from a RouteCache where it can and
// sends only the misses to the wrapped backend. Only successful elements are
// stored. A batch whose destinations are all cached issues no request.
type CachedProvider struct {
	next  ports.RouteMatrixProvider
	cache ports.RouteCache
}

func NewCachedProvider(next ports.RouteMatrixProvider, cache ports.RouteCache) (*CachedProvider, error) {
	if next == nil {
		return nil, errors.New("cached provider: next provider is nil")
	}
	if cache == nil {
		return nil, errors.New("cached provider: cache is nil")
	}
	return &CachedProvider{next: next, cache: cache}, nil
}

func (c *CachedProvider) MaxDestinations() int { return c.next.MaxDestinations() }

func (c *CachedProvider) RouteBatch(
	ctx context.Context,
	origin domain.Location,
	destinations []domain.Location,
	mode domain.TravelMode,
) (ports.RouteBatch, error) {
	log := obs.Logger(ctx)
	originKey := origin.Key()

	keys := make([]string, len(destinations))
	for i, d := range destinations {
		keys[i] = d.Key()
	}

	hits, err := c.cache.GetMany(ctx, mode, originKey, keys)
	if err != nil {
		log.Warn("route cache read failed, querying backend", zap.String("origin", originKey), zap.Error(err))
		hits = map[string]ports.RouteElement{}
	}

	elements := make([]ports.RouteElement, len(destinations))
	missIdx := make([]int, 0, len(destinations))
	misses := make([]domain.Location, 0, len(destinations))
	for i, k := range keys {
		if e, ok := hits[k]; ok {
			elements[i] = e
			continue
		}
		missIdx = append(missIdx, i)
		misses = append(misses, destinations[i])
	}

	if len(misses) == 0 {
		return ports.RouteBatch{Status: ports.StatusOK, Elements: elements}, nil
	}

	fetched, err := c.next.RouteBatch(ctx, origin, misses, mode)
	if err != nil {
		return ports.RouteBatch{}, err
	}
	if !fetched.OK() {
		return fetched, nil
	}
	if len(fetched.Elements) != len(misses) {
		return ports.RouteBatch{
			Status:  ports.StatusInvalidResponse,
			Message: fmt.Sprintf("backend returned %d elements for %d destinations", len(fetched.Elements), len(misses)),
		}, nil
	}

	fresh := make(map[string]ports.RouteElement, len(misses))
	for j, i := range missIdx {
		e := fetched.Elements[j]
		elements[i] = e
		if e.OK() {
			fresh[keys[i]] = e
		}
	}

	if len(fresh) > 0 {
		if err := c.cache.PutMany(ctx, mode, originKey, fresh); err != nil {
			log.Warn("route cache write failed", zap.String("origin", originKey), zap.Error(err))
		}
	}

	return ports.RouteBatch{Status: ports.StatusOK, Elements: elements}, nil
}
