package main

import (
	"apartment-geo-enrich/internal/adapters/cache"
	"apartment-geo-enrich/internal/adapters/distance"
	"apartment-geo-enrich/internal/adapters/google"
	"apartment-geo-enrich/internal/adapters/repositories"
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/db"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// backends is the composition root shared by the jobs: it owns the cache
// store and builds the backend adapters on top of it.
type backends struct {
	routeCache   ports.RouteCache
	geocodeCache ports.GeocodeCache
	closers      []func()
}

// openBackends opens the cache store selected by cache.driver.
func openBackends(ctx context.Context) (*backends, error) {
	b := &backends{}
	log := obs.Logger(ctx).With(zap.String("cache", cfg.Cache.Driver))

	switch cfg.Cache.Driver {
	case "none":
	case "memory":
		b.routeCache = cache.NewMemoryRouteCache(cfg.Cache.MemorySize)
		b.geocodeCache = cache.NewMemoryGeocodeCache(cfg.Cache.MemorySize)
	case "sqlite":
		if dir := filepath.Dir(cfg.Cache.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, eris.Wrap(err, "wiring: create cache directory")
			}
		}
		sqlDB, err := db.OpenSQLite(cfg.Cache.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { sqlDB.Close() })
		if err := cache.InitSQLiteSchema(ctx, sqlDB); err != nil {
			b.Close()
			return nil, err
		}
		b.routeCache = cache.NewSqliteRouteCache(sqlDB)
		b.geocodeCache = cache.NewSqliteGeocodeCache(sqlDB)
	case "postgres":
		pool, err := db.OpenPostgres(ctx, cfg.Cache.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		if err := cache.InitPostgresSchema(ctx, pool); err != nil {
			b.Close()
			return nil, err
		}
		b.routeCache = cache.NewPostgresRouteCache(pool)
		b.geocodeCache = cache.NewPostgresGeocodeCache(pool)
	default:
		return nil, eris.Errorf("wiring: unknown cache driver %q", cfg.Cache.Driver)
	}

	log.Debug("backends ready")
	return b, nil
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

func (b *backends) distanceOptions() []distance.Option {
	opts := []distance.Option{distance.WithTimeout(cfg.Routing.Timeout)}
	var base string
	switch cfg.Routing.Provider {
	case "google":
		base = cfg.Google.BaseURL
	case "ors":
		base = cfg.ORS.BaseURL
	}
	if base != "" {
		opts = append(opts, distance.WithBaseURL(base))
	}
	return opts
}

// routeProvider builds the configured routing backend, behind the route
// cache when one is open.
func (b *backends) routeProvider() (ports.RouteMatrixProvider, error) {
	key, err := cfg.APIKey(cfg.Routing.Provider)
	if err != nil {
		return nil, err
	}

	var p ports.RouteMatrixProvider
	switch cfg.Routing.Provider {
	case "google":
		p, err = distance.NewGoogleMatrixProvider(key, b.distanceOptions()...)
	case "ors":
		p, err = distance.NewORSProvider(key, b.geocodeCache, b.distanceOptions()...)
	default:
		err = eris.Errorf("wiring: unknown routing provider %q", cfg.Routing.Provider)
	}
	if err != nil {
		return nil, err
	}

	if b.routeCache == nil {
		return p, nil
	}
	return distance.NewCachedProvider(p, b.routeCache)
}

func (b *backends) googleClient() (*google.Client, error) {
	key, err := cfg.APIKey("google")
	if err != nil {
		return nil, err
	}
	var opts []google.Option
	if cfg.Google.BaseURL != "" {
		opts = append(opts, google.WithBaseURL(cfg.Google.BaseURL))
	}
	return google.NewClient(key, opts...)
}

// geocoder builds the geocoding backend of the configured provider. The ORS
// adapter caches on its own; Google is wrapped when a cache is open.
func (b *backends) geocoder() (ports.Geocoder, error) {
	if cfg.Routing.Provider == "ors" {
		key, err := cfg.APIKey("ors")
		if err != nil {
			return nil, err
		}
		return distance.NewORSProvider(key, b.geocodeCache, b.distanceOptions()...)
	}

	client, err := b.googleClient()
	if err != nil {
		return nil, err
	}
	if b.geocodeCache == nil {
		return client, nil
	}
	return cache.NewCachingGeocoder(client, b.geocodeCache)
}

func (b *backends) placeSearcher() (ports.PlaceSearcher, error) {
	return b.googleClient()
}

// readTable loads a CSV and checks that cols are present.
func readTable(path string, cols ...string) (*tabular.Table, error) {
	t, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var want []string
	for _, c := range cols {
		if c != "" {
			want = append(want, c)
		}
	}
	if err := t.Require(want...); err != nil {
		return nil, eris.Wrapf(err, "input %s", path)
	}
	return t, nil
}

// entityRepo reads a CSV into an entity repository, failing fast on absent
// columns.
func entityRepo(path string, cols repositories.EntityColumns) (*repositories.CSVEntityRepository, error) {
	t, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}
	repo, err := repositories.NewCSVEntityRepository(t, cols)
	if err != nil {
		return nil, eris.Wrapf(err, "input %s", path)
	}
	return repo, nil
}

func travelMode(flagValue string) (domain.TravelMode, error) {
	if flagValue == "" {
		flagValue = cfg.Routing.Mode
	}
	return domain.ParseTravelMode(flagValue)
}
