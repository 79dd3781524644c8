package distance

import (
	"apartment-geo-enrich/internal/adapters/cache"
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/ports"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedProviderSendsOnlyMisses(t *testing.T) {
	ctx := context.Background()
	mock := NewMockMatrixProvider([]MockPair{
		{From: "O", To: "A", Meters: 100, Seconds: 10},
		{From: "O", To: "B", Meters: 200, Seconds: 20},
	}).WithMaxDestinations(25)

	p, err := NewCachedProvider(mock, cache.NewMemoryRouteCache(64))
	require.NoError(t, err)
	assert.Equal(t, 25, p.MaxDestinations())

	first, err := p.RouteBatch(ctx, domain.AddressLocation("O"), locs("A", "C"), domain.ModeWalking)
	require.NoError(t, err)
	require.True(t, first.OK())
	assert.Equal(t, ports.StatusNotFound, first.Elements[1].Status)

	second, err := p.RouteBatch(ctx, domain.AddressLocation("O"), locs("A", "B", "C"), domain.ModeWalking)
	require.NoError(t, err)
	require.Len(t, second.Elements, 3)
	assert.Equal(t, 100.0, second.Elements[0].DistanceMeters)
	assert.Equal(t, 200.0, second.Elements[1].DistanceMeters)
	assert.Equal(t, ports.StatusNotFound, second.Elements[2].Status)

	require.Len(t, mock.Calls, 2)
	// A was served from cache; the failed C is asked again.
	assert.Equal(t, []string{"B", "C"}, mock.Calls[1].Destinations)

	_, err = p.RouteBatch(ctx, domain.AddressLocation("O"), locs("A", "B"), domain.ModeWalking)
	require.NoError(t, err)
	assert.Len(t, mock.Calls, 2, "fully cached batch must not reach the backend")
}

func TestCachedProviderPropagatesFailures(t *testing.T) {
	ctx := context.Background()
	mock := NewMockMatrixProvider(nil).
		FailBatch(0, "OVER_QUERY_LIMIT").
		FailTransport(1, errors.New("connection refused"))

	p, err := NewCachedProvider(mock, cache.NewMemoryRouteCache(8))
	require.NoError(t, err)

	batch, err := p.RouteBatch(ctx, domain.AddressLocation("O"), locs("A"), domain.ModeDriving)
	require.NoError(t, err)
	assert.Equal(t, "OVER_QUERY_LIMIT", batch.Status)

	_, err = p.RouteBatch(ctx, domain.AddressLocation("O"), locs("A"), domain.ModeDriving)
	assert.ErrorContains(t, err, "connection refused")
}

func TestMockMatrixProviderRecordsCalls(t *testing.T) {
	mock := NewMockMatrixProvider([]MockPair{{From: "O", To: "A", Status: ports.StatusNoRoute}})

	batch, err := mock.RouteBatch(context.Background(), domain.AddressLocation("O"), locs("A"), domain.ModeWalking)
	require.NoError(t, err)
	assert.Equal(t, ports.StatusNoRoute, batch.Elements[0].Status)
	assert.Equal(t, []MockCall{{Origin: "O", Destinations: []string{"A"}}}, mock.Calls)
}
