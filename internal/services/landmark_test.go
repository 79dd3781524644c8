package services

import (
	"apartment-geo-enrich/internal/adapters/distance"
	"apartment-geo-enrich/internal/adapters/repositories"
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quad = "250 W Quad, Davis, CA 95616"

func apartmentsTable() *tabular.Table {
	t := tabular.New("id", "name", "address")
	t.Append([]string{"1", "Sycamore Lane", "1111 Sycamore Ln, Davis, CA"})
	t.Append([]string{"2", "Aggie Square", "801 J St, Davis, CA"})
	t.Append([]string{"3", "Sycamore Lane", "1111 Sycamore Ln, Davis, CA"})
	return t
}

func TestAppendLandmarkWritesColumnsPerRow(t *testing.T) {
	table := apartmentsTable()
	repo, err := repositories.NewCSVEntityRepository(table, repositories.EntityColumns{Key: "id", Name: "name", Address: "address"})
	require.NoError(t, err)

	provider := distance.NewMockMatrixProvider([]distance.MockPair{
		{From: "1111 Sycamore Ln, Davis, CA", To: quad, Meters: 3218.68, Seconds: 420},
	}).FailTransport(1, errors.New("timeout"))

	req := LandmarkRequest{
		Destination:    quad,
		Mode:           domain.ModeDriving,
		DistanceColumn: "ucd_distance_miles",
		DurationColumn: "ucd_time_min",
		LocateSource:   ByAddress,
	}
	summary, err := AppendLandmark(context.Background(), req, table, repo, provider, pacing.None())
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "address", "ucd_distance_miles", "ucd_time_min"}, table.Header)
	assert.Equal(t, []string{"2.0", "", "2.0"}, table.Column("ucd_distance_miles"))
	assert.Equal(t, []string{"7.0", "", "7.0"}, table.Column("ucd_time_min"))
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, provider.Calls, 3)
}

func TestAppendLandmarkRequiresDestination(t *testing.T) {
	table := apartmentsTable()
	repo, err := repositories.NewCSVEntityRepository(table, repositories.EntityColumns{Key: "id", Address: "address"})
	require.NoError(t, err)

	_, err = AppendLandmark(context.Background(), LandmarkRequest{DistanceColumn: "d", DurationColumn: "t"}, table, repo, distance.NewMockMatrixProvider(nil), pacing.None())
	assert.Error(t, err)
}
