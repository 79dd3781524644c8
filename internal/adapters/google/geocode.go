package google

import (
	"apartment-geo-enrich/internal/domain"
	"context"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// Geocode resolves address to the coordinates of its first match. found is
// false for ZERO_RESULTS; quota and request errors are returned as errors.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, false, nil
	}

	var gr geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", url.Values{"address": {address}}, &gr); err != nil {
		return domain.Coordinates{}, false, eris.Wrapf(err, "google: geocode %q", address)
	}

	switch gr.Status {
	case "OK":
	case "ZERO_RESULTS":
		return domain.Coordinates{}, false, nil
	default:
		return domain.Coordinates{}, false, eris.Errorf("google: geocode %q: %s %s", address, gr.Status, gr.ErrorMessage)
	}
	if len(gr.Results) == 0 {
		return domain.Coordinates{}, false, nil
	}

	loc := gr.Results[0].Geometry.Location
	return domain.Coordinates{Lat: loc.Lat, Lon: loc.Lng}, true, nil
}
