package services

import (
	"apartment-geo-enrich/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coords(lat, lng float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lon: lng}
}

func TestHaversineMatrixSkipsInvalidCoordinates(t *testing.T) {
	logs := observeLogs(t)

	apartments := sliceRepo{
		{Key: "1", Coords: coords(38.5449, -121.7405)},
		{Key: "2"},
		{Key: "3", Coords: coords(38.5600, -121.7500)},
	}
	crimes := sliceRepo{
		{Key: "C1", Coords: coords(38.5500, -121.7400)},
		{Key: "C2"},
		{Key: "C3", Coords: coords(38.5400, -121.7600)},
	}

	got, summary, err := HaversineMatrix(context.Background(), apartments, crimes)
	require.NoError(t, err)

	assert.Len(t, got, 4)
	assert.Equal(t, HaversineSummary{Sources: 2, Targets: 2, SkippedSources: 1, SkippedTargets: 1, Pairs: 4}, summary)

	assert.Equal(t, "1", got[0].SourceKey)
	assert.Equal(t, "C1", got[0].TargetKey)
	assert.Equal(t, "3", got[3].SourceKey)
	assert.Equal(t, "C3", got[3].TargetKey)
	for _, r := range got {
		assert.True(t, r.OK())
		assert.True(t, domain.IsMissing(r.DurationMin))
		assert.NotEqual(t, "C2", r.TargetKey)
	}
	assert.InDelta(t,
		domain.HaversineMiles(38.5449, -121.7405, 38.5500, -121.7400),
		got[0].DistanceMiles, 1e-12)

	skipped := logs.FilterMessage("skipping target: invalid coordinates").All()
	require.Len(t, skipped, 1, "excluded target is reported once, not once per source")
	assert.Equal(t, "C2", skipped[0].ContextMap()["key"])
	assert.Len(t, logs.FilterMessage("skipping source: invalid coordinates").All(), 1)
}

func TestHaversineMatrixIdenticalPoints(t *testing.T) {
	p := coords(38.5449, -121.7405)
	got, _, err := HaversineMatrix(context.Background(), sliceRepo{{Key: "a", Coords: p}}, sliceRepo{{Key: "b", Coords: p}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].DistanceMiles)
}

func TestHaversineMatrixNilRepository(t *testing.T) {
	_, _, err := HaversineMatrix(context.Background(), nil, sliceRepo{})
	assert.Error(t, err)
}
