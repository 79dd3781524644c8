package services

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/pacing"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	known map[string]domain.Coordinates
	fail  map[string]bool
	asked []string
}

func (g *fakeGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	g.asked = append(g.asked, address)
	if g.fail[address] {
		return domain.Coordinates{}, false, errors.New("backend unavailable")
	}
	c, ok := g.known[address]
	return c, ok, nil
}

func crimesTable() *tabular.Table {
	t := tabular.New("Case Number", "Report Classification", "Location")
	t.Append([]string{"C1", "Burglary", "600 Russell Blvd"})
	t.Append([]string{"C2", "Vandalism", "unknown"})
	t.Append([]string{"C3", "Fraud", "  "})
	t.Append([]string{"C4", "Fraud", "Case Number Pulled In Error"})
	t.Append([]string{"C5", " unknown ", "1 Shields Ave"})
	t.Append([]string{"C6", "", "1 Shields Ave"})
	t.Append([]string{"C7", "Stalking", "Nowhere Rd"})
	t.Append([]string{"C8", "Shoplifting", "Broken Rd"})
	t.Append([]string{"C9", "Warrant", "200 B St"})
	return t
}

func TestGeocodeTable(t *testing.T) {
	table := crimesTable()
	geo := &fakeGeocoder{
		known: map[string]domain.Coordinates{
			"600 Russell Blvd, Davis, CA": {Lat: 38.5431, Lon: -121.7548},
			"200 B St, Davis, CA":         {Lat: 38.5442, Lon: -121.7397},
		},
		fail: map[string]bool{"Broken Rd, Davis, CA": true},
	}

	req := GeocodeRequest{
		LocationColumn:       "Location",
		ClassificationColumn: "Report Classification",
		KeyColumn:            "Case Number",
		LatColumn:            "lat",
		LngColumn:            "lng",
		Suffix:               DefaultAddressSuffix,
	}
	summary, err := GeocodeTable(context.Background(), req, table, geo, pacing.None())
	require.NoError(t, err)

	assert.Equal(t, GeocodeSummary{
		Initial:               9,
		InvalidLocation:       3,
		InvalidClassification: 2,
		GeocodeFailed:         2,
		Final:                 2,
	}, summary)
	assert.Equal(t, []string{"C1", "C9"}, table.Column("Case Number"))
	assert.Equal(t, []string{"38.5431", "38.5442"}, table.Column("lat"))
	assert.Equal(t, []string{"-121.7548", "-121.7397"}, table.Column("lng"))
	assert.Len(t, geo.asked, 4)
}

func TestGeocodeTableMissingColumn(t *testing.T) {
	table := tabular.New("Case Number", "Location")
	geo := &fakeGeocoder{}

	_, err := GeocodeTable(context.Background(), GeocodeRequest{
		LocationColumn:       "Location",
		ClassificationColumn: "Report Classification",
		LatColumn:            "lat",
		LngColumn:            "lng",
	}, table, geo, pacing.None())

	require.ErrorIs(t, err, tabular.ErrMissingColumn)
	assert.Empty(t, geo.asked, "no backend call before the input is validated")
}
