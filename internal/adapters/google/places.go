package google

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/ports"
	"context"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
)

type textSearchResponse struct {
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message"`
	NextPageToken string        `json:"next_page_token"`
	Results       []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
	UserRatingsTotal *int     `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// SearchText runs a Places text search. With a PageToken set, only the token
// is sent and the other fields are ignored.
func (c *Client) SearchText(ctx context.Context, q ports.PlaceQuery) (ports.PlacePage, error) {
	params := url.Values{}
	if q.PageToken != "" {
		params.Set("pagetoken", q.PageToken)
	} else {
		params.Set("query", q.Text)
		params.Set("location", q.Center.LatLng())
		if q.RadiusMeters > 0 {
			params.Set("radius", strconv.Itoa(q.RadiusMeters))
		}
	}

	var tr textSearchResponse
	if err := c.getJSON(ctx, "/maps/api/place/textsearch/json", params, &tr); err != nil {
		return ports.PlacePage{}, eris.Wrapf(err, "google: text search %q", q.Text)
	}

	switch tr.Status {
	case "OK":
	case "ZERO_RESULTS":
		return ports.PlacePage{}, nil
	default:
		return ports.PlacePage{}, eris.Errorf("google: text search %q: %s %s", q.Text, tr.Status, tr.ErrorMessage)
	}

	page := ports.PlacePage{
		Places:        make([]ports.Place, 0, len(tr.Results)),
		NextPageToken: tr.NextPageToken,
	}
	for _, r := range tr.Results {
		page.Places = append(page.Places, ports.Place{
			PlaceID:          r.PlaceID,
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Coords:           domain.Coordinates{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng},
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			Types:            r.Types,
		})
	}
	return page, nil
}
