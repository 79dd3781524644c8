package services

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/ports"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	byText  map[string]ports.PlacePage
	byToken map[string]ports.PlacePage
	failing map[string]bool
	queries []ports.PlaceQuery
}

func (s *fakeSearcher) SearchText(ctx context.Context, q ports.PlaceQuery) (ports.PlacePage, error) {
	s.queries = append(s.queries, q)
	if q.PageToken != "" {
		return s.byToken[q.PageToken], nil
	}
	if s.failing[q.Text] {
		return ports.PlacePage{}, errors.New("OVER_QUERY_LIMIT")
	}
	return s.byText[q.Text], nil
}

func place(id, name, address string) ports.Place {
	return ports.Place{PlaceID: id, Name: name, Address: address, Coords: domain.Coordinates{Lat: 38.5, Lon: -121.75}}
}

func TestDiscoverPlaces(t *testing.T) {
	rating := 4.5
	total := 120
	withRating := place("p2", "Aggie Square", "801 J St, Davis, CA 95616")
	withRating.Rating = &rating
	withRating.UserRatingsTotal = &total
	withRating.Types = []string{"lodging", "point_of_interest"}

	s := &fakeSearcher{
		byText: map[string]ports.PlacePage{
			"apartments in Davis, CA": {
				Places:        []ports.Place{place("p1", "Sycamore Lane", "1111 Sycamore Ln, Davis, CA"), withRating},
				NextPageToken: "tok1",
			},
			"student housing in Davis, CA": {
				Places: []ports.Place{place("p1", "Sycamore Lane", "1111 Sycamore Ln, Davis, CA"), place("p4", "Cedar Court", "12 Main St, Woodland, CA")},
			},
		},
		byToken: map[string]ports.PlacePage{
			"tok1": {Places: []ports.Place{place("p3", "Almond Orchard", "2000 Anderson Rd, davis, CA")}},
		},
		failing: map[string]bool{"broken in Davis, CA": true},
	}

	req := PlacesRequest{
		Queries:      []string{"apartments", "broken", "student housing"},
		Area:         "Davis, CA",
		Center:       domain.Coordinates{Lat: 38.5449, Lon: -121.7405},
		RadiusMeters: 9656,
		Locality:     "Davis",
	}
	table, summary, err := DiscoverPlaces(context.Background(), req, s, pacing.None())
	require.NoError(t, err)

	assert.Equal(t, PlacesSummary{Queries: 3, Failed: 1, Unique: 4, Kept: 3}, summary)
	assert.Equal(t, PlaceColumns, table.Header)
	assert.Equal(t, []string{"Aggie Square", "Almond Orchard", "Sycamore Lane"}, table.Column("name"))
	assert.Equal(t, []string{"p2", "p3", "p1"}, table.Column("place_id"))
	assert.Equal(t, []string{"4.5", "", ""}, table.Column("rating"))
	assert.Equal(t, []string{"120", "", ""}, table.Column("user_ratings_total"))
	assert.Equal(t, "['lodging', 'point_of_interest']", table.Value(0, "types"))
	assert.Equal(t, "[]", table.Value(1, "types"))

	require.Len(t, s.queries, 4)
	assert.Equal(t, 9656, s.queries[0].RadiusMeters)
	assert.Equal(t, ports.PlaceQuery{PageToken: "tok1"}, s.queries[1])
}

func TestDiscoverPlacesPresetsExist(t *testing.T) {
	assert.Len(t, PlaceQueryPresets["apartments"], 6)
	assert.Len(t, PlaceQueryPresets["grocery"], 5)
}

func TestDiscoverPlacesNoQueries(t *testing.T) {
	_, _, err := DiscoverPlaces(context.Background(), PlacesRequest{}, &fakeSearcher{}, pacing.None())
	assert.Error(t, err)
}
