package cache

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/db"
	"apartment-geo-enrich/internal/ports"
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteCaches(t *testing.T) (*SqliteRouteCache, *SqliteGeocodeCache) {
	t.Helper()
	sqlDB, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, InitSQLiteSchema(context.Background(), sqlDB))
	// idempotent
	require.NoError(t, InitSQLiteSchema(context.Background(), sqlDB))

	return NewSqliteRouteCache(sqlDB), NewSqliteGeocodeCache(sqlDB)
}

func TestSqliteRouteCacheSeparatesModesAndSkipsFailures(t *testing.T) {
	ctx := context.Background()
	routes, _ := newSQLiteCaches(t)

	err := routes.PutMany(ctx, domain.ModeWalking, "1 A St", map[string]ports.RouteElement{
		"38.5,-121.7": {Status: ports.StatusOK, DistanceMeters: 1609.34, DurationSeconds: 60},
		"38.6,-121.8": {Status: ports.StatusNoRoute},
	})
	require.NoError(t, err)

	got, err := routes.GetMany(ctx, domain.ModeWalking, "1 A St", []string{"38.5,-121.7", "38.6,-121.8", "38.5,-121.7", " "})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ports.RouteElement{Status: ports.StatusOK, DistanceMeters: 1609.34, DurationSeconds: 60}, got["38.5,-121.7"])

	driving, err := routes.GetMany(ctx, domain.ModeDriving, "1 A St", []string{"38.5,-121.7"})
	require.NoError(t, err)
	assert.Empty(t, driving)
}

func TestSqliteRouteCacheRejectsEmptyOrigin(t *testing.T) {
	routes, _ := newSQLiteCaches(t)
	_, err := routes.GetMany(context.Background(), domain.ModeWalking, "", []string{"x"})
	assert.Error(t, err)
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, geo := newSQLiteCaches(t)

	require.NoError(t, geo.PutMany(ctx, map[string]domain.Coordinates{
		"250 W Quad, Davis, CA 95616": {Lat: 38.5422, Lon: -121.7499},
	}))
	require.NoError(t, geo.PutMany(ctx, map[string]domain.Coordinates{
		"250 W Quad, Davis, CA 95616": {Lat: 38.5423, Lon: -121.7498},
	}))

	got, err := geo.GetMany(ctx, []string{"250 W Quad, Davis, CA 95616", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{
		"250 W Quad, Davis, CA 95616": {Lat: 38.5423, Lon: -121.7498},
	}, got)
}

func TestPostgresRouteCacheGetMany(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT destination, distance_meters, duration_seconds FROM route_cache").
		WithArgs("driving", "1 A St", []string{"B", "C"}).
		WillReturnRows(pgxmock.NewRows([]string{"destination", "distance_meters", "duration_seconds"}).
			AddRow("B", 3218.68, 120.0))

	c := NewPostgresRouteCache(mock)
	got, err := c.GetMany(context.Background(), domain.ModeDriving, "1 A St", []string{"B", "C", "B"})
	require.NoError(t, err)
	assert.Equal(t, map[string]ports.RouteElement{
		"B": {Status: ports.StatusOK, DistanceMeters: 3218.68, DurationSeconds: 120},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRouteCachePutManySortsAndSkipsFailures(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO route_cache").
		WithArgs("walking", "1 A St", []string{"A", "C"}, []float64{100, 300}, []float64{10, 30}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	c := NewPostgresRouteCache(mock)
	err = c.PutMany(context.Background(), domain.ModeWalking, "1 A St", map[string]ports.RouteElement{
		"C": {Status: ports.StatusOK, DistanceMeters: 300, DurationSeconds: 30},
		"B": {Status: ports.StatusNotFound},
		"A": {Status: ports.StatusOK, DistanceMeters: 100, DurationSeconds: 10},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRouteCachePutManyAllFailedIsNoop(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	c := NewPostgresRouteCache(mock)
	err = c.PutMany(context.Background(), domain.ModeWalking, "1 A St", map[string]ports.RouteElement{
		"B": {Status: ports.StatusNotFound},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGeocodeCache(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO geocode_cache").
		WithArgs([]string{"A", "B"}, []float64{-121.1, -121.2}, []float64{38.1, 38.2}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectQuery("SELECT address, lon, lat FROM geocode_cache").
		WithArgs([]string{"A"}).
		WillReturnRows(pgxmock.NewRows([]string{"address", "lon", "lat"}).AddRow("A", -121.1, 38.1))

	c := NewPostgresGeocodeCache(mock)
	require.NoError(t, c.PutMany(context.Background(), map[string]domain.Coordinates{
		"B": {Lat: 38.2, Lon: -121.2},
		"A": {Lat: 38.1, Lon: -121.1},
	}))

	got, err := c.GetMany(context.Background(), []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 38.1, Lon: -121.1}, got["A"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRouteCacheQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT destination").
		WithArgs(string(domain.ModeWalking), "1 A St", []string{"B"}).
		WillReturnError(errors.New("connection reset"))

	c := NewPostgresRouteCache(mock)
	_, err = c.GetMany(context.Background(), domain.ModeWalking, "1 A St", []string{"B"})
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitPostgresSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS route_cache").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS geocode_cache").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCommit()

	require.NoError(t, InitPostgresSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryCaches(t *testing.T) {
	ctx := context.Background()

	geo := NewMemoryGeocodeCache(2)
	require.NoError(t, geo.PutMany(ctx, map[string]domain.Coordinates{"A": {Lat: 1, Lon: 2}}))
	got, err := geo.GetMany(ctx, []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{"A": {Lat: 1, Lon: 2}}, got)

	routes := NewMemoryRouteCache(0)
	require.NoError(t, routes.PutMany(ctx, domain.ModeDriving, "O", map[string]ports.RouteElement{
		"A": {Status: ports.StatusOK, DistanceMeters: 5, DurationSeconds: 6},
		"B": {Status: ports.StatusNoRoute},
	}))
	hits, err := routes.GetMany(ctx, domain.ModeDriving, "O", []string{"A", "B"})
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = routes.GetMany(ctx, domain.ModeWalking, "O", []string{"A"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

type countingGeocoder struct {
	calls int
	found bool
}

func (c *countingGeocoder) Geocode(context.Context, string) (domain.Coordinates, bool, error) {
	c.calls++
	return domain.Coordinates{Lat: 38.5, Lon: -121.7}, c.found, nil
}

func TestCachingGeocoder(t *testing.T) {
	ctx := context.Background()
	next := &countingGeocoder{found: true}
	g, err := NewCachingGeocoder(next, NewMemoryGeocodeCache(16))
	require.NoError(t, err)

	for range 3 {
		c, found, err := g.Geocode(ctx, "1  Shields Ave,  Davis, CA")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 38.5, c.Lat)
	}
	assert.Equal(t, 1, next.calls)

	miss := &countingGeocoder{found: false}
	g, err = NewCachingGeocoder(miss, NewMemoryGeocodeCache(16))
	require.NoError(t, err)
	for range 2 {
		_, found, err := g.Geocode(ctx, "nowhere")
		require.NoError(t, err)
		assert.False(t, found)
	}
	assert.Equal(t, 2, miss.calls, "misses must not be cached")
}
