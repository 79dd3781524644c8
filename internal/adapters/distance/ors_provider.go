package distance

import (
	"apartment-geo-enrich/internal/adapters/cache"
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const orsBaseURL = "https://api.openrouteservice.org"

var orsProfiles = map[domain.TravelMode]string{
	domain.ModeWalking: "foot-walking",
	domain.ModeDriving: "driving-car",
}

// ORSProvider implements RouteMatrixProvider and Geocoder using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Geocode caching (persistent when given, in-process otherwise)
//   - Matrix calls for one origin and many destinations
//
// Address waypoints are geocoded first because the matrix endpoint only
// accepts coordinates.
type ORSProvider struct {
	httpClient
	geocodeCache ports.GeocodeCache
}

// defaultGeocodeMemo bounds the in-process geocode memo used when no cache is
// given.
const defaultGeocodeMemo = 4096

// NewORSProvider builds an ORS client. A nil geocodeCache is replaced by an
// in-process memo so each distinct address is geocoded once per run.
func NewORSProvider(apiKey string, geocodeCache ports.GeocodeCache, opts ...Option) (*ORSProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if geocodeCache == nil {
		geocodeCache = cache.NewMemoryGeocodeCache(defaultGeocodeMemo)
	}

	c := newHTTPClient(orsBaseURL, 0, opts)
	c.authorize = func(req *http.Request) { req.Header.Set("Authorization", apiKey) }

	return &ORSProvider{httpClient: c, geocodeCache: geocodeCache}, nil
}

func (o *ORSProvider) MaxDestinations() int { return o.maxDestinations }

// RouteBatch resolves the origin and destinations to coordinates and fetches
// a single matrix row. An origin that cannot be geocoded fails the batch; a
// destination that cannot be geocoded fails only its element.
func (o *ORSProvider) RouteBatch(
	ctx context.Context,
	origin domain.Location,
	destinations []domain.Location,
	mode domain.TravelMode,
) (_ ports.RouteBatch, err error) {
	defer obs.Time(ctx, "ors.RouteBatch")(&err)

	profile, ok := orsProfiles[mode]
	if !ok {
		return ports.RouteBatch{}, fmt.Errorf("ORS route batch: unsupported mode %q", mode)
	}
	if origin.IsZero() {
		return ports.RouteBatch{}, errors.New("ORS route batch: origin must be non-empty")
	}
	if len(destinations) == 0 {
		return ports.RouteBatch{Status: ports.StatusOK}, nil
	}

	originCoord, found, err := o.resolve(ctx, origin)
	if err != nil {
		return ports.RouteBatch{}, fmt.Errorf("resolve origin %q: %w", origin.Key(), err)
	}
	if !found {
		return ports.RouteBatch{
			Status:  ports.StatusNotFound,
			Message: fmt.Sprintf("origin %q could not be geocoded", origin.Key()),
		}, nil
	}

	elements := make([]ports.RouteElement, len(destinations))
	resolvedIdx := make([]int, 0, len(destinations))
	resolved := make([]domain.Coordinates, 0, len(destinations))
	for i, d := range destinations {
		c, found, err := o.resolve(ctx, d)
		if err != nil {
			return ports.RouteBatch{}, fmt.Errorf("resolve destination %q: %w", d.Key(), err)
		}
		if !found {
			elements[i] = ports.RouteElement{Status: ports.StatusNotFound}
			continue
		}
		resolvedIdx = append(resolvedIdx, i)
		resolved = append(resolved, c)
	}

	if len(resolved) == 0 {
		return ports.RouteBatch{Status: ports.StatusOK, Elements: elements}, nil
	}

	row, err := o.fetchMatrixRow(ctx, profile, originCoord, resolved)
	if err != nil {
		return ports.RouteBatch{}, fmt.Errorf("fetching matrix row: %w", err)
	}
	if len(row) != len(resolved) {
		return ports.RouteBatch{
			Status:  ports.StatusInvalidResponse,
			Message: fmt.Sprintf("row length %d does not match %d destinations", len(row), len(resolved)),
		}, nil
	}

	for j, i := range resolvedIdx {
		elements[i] = row[j]
	}

	return ports.RouteBatch{Status: ports.StatusOK, Elements: elements}, nil
}

func (o *ORSProvider) resolve(ctx context.Context, l domain.Location) (domain.Coordinates, bool, error) {
	if l.Coords != nil {
		return *l.Coords, true, nil
	}
	return o.Geocode(ctx, l.Address)
}

// Geocode resolves one address, consulting the geocode cache first.
func (o *ORSProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	norm := domain.NormalizeAddress(address)
	if norm == "" {
		return domain.Coordinates{}, false, nil
	}

	hits, err := o.geocodeCache.GetMany(ctx, []string{norm})
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("ORS get geocode cache: %w", err)
	}
	if c, ok := hits[norm]; ok {
		return c, true, nil
	}

	c, found, err := o.geocodeOne(ctx, norm)
	if err != nil || !found {
		return c, found, err
	}

	if err := o.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{norm: c}); err != nil {
		obs.Logger(ctx).Warn("geocode cache write failed", zap.Error(err))
	}

	return c, true, nil
}
