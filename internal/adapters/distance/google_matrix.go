package distance

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	googleBaseURL = "https://maps.googleapis.com"
	// Distance Matrix rejects more than 25 destinations per origin (MAX_DIMENSIONS_EXCEEDED).
	googleMaxDestinations = 25
)

type googleMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// GoogleMatrixProvider implements RouteMatrixProvider with the Google
// Distance Matrix API. Each RouteBatch call is exactly one request; failures
// are reported, never retried.
type GoogleMatrixProvider struct {
	httpClient
	apiKey string
}

func NewGoogleMatrixProvider(apiKey string, opts ...Option) (*GoogleMatrixProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google api key is empty")
	}

	return &GoogleMatrixProvider{
		httpClient: newHTTPClient(googleBaseURL, googleMaxDestinations, opts),
		apiKey:     apiKey,
	}, nil
}

func (g *GoogleMatrixProvider) MaxDestinations() int { return g.maxDestinations }

// waypoint renders a location the way the API accepts it: "lat,lng" or free text.
func waypoint(l domain.Location) string {
	if l.Coords != nil {
		return l.Coords.LatLng()
	}
	return domain.NormalizeAddress(l.Address)
}

func (g *GoogleMatrixProvider) RouteBatch(
	ctx context.Context,
	origin domain.Location,
	destinations []domain.Location,
	mode domain.TravelMode,
) (_ ports.RouteBatch, err error) {
	defer obs.Time(ctx, "google.RouteBatch")(&err)

	if origin.IsZero() {
		return ports.RouteBatch{}, errors.New("google route batch: origin must be non-empty")
	}
	if len(destinations) == 0 {
		return ports.RouteBatch{Status: ports.StatusOK}, nil
	}
	if g.maxDestinations > 0 && len(destinations) > g.maxDestinations {
		return ports.RouteBatch{}, fmt.Errorf(
			"google route batch: %d destinations exceeds cap of %d",
			len(destinations), g.maxDestinations,
		)
	}

	dests := make([]string, len(destinations))
	for i, d := range destinations {
		dests[i] = waypoint(d)
	}

	params := url.Values{
		"origins":      {waypoint(origin)},
		"destinations": {strings.Join(dests, "|")},
		"mode":         {string(mode)},
		"units":        {"metric"},
		"key":          {g.apiKey},
	}
	endpoint := g.baseURL + "/maps/api/distancematrix/json?" + params.Encode()

	resp, err := g.doWithRetry(ctx, 1, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return ports.RouteBatch{}, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr googleMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return ports.RouteBatch{}, fmt.Errorf("decode distance matrix response: %w", err)
	}

	if mr.Status != ports.StatusOK {
		return ports.RouteBatch{Status: mr.Status, Message: mr.ErrorMessage}, nil
	}
	if len(mr.Rows) != 1 {
		return ports.RouteBatch{
			Status:  ports.StatusInvalidResponse,
			Message: fmt.Sprintf("expected 1 origin row; got %d", len(mr.Rows)),
		}, nil
	}

	elements := make([]ports.RouteElement, 0, len(mr.Rows[0].Elements))
	for _, e := range mr.Rows[0].Elements {
		el := ports.RouteElement{Status: e.Status}
		if e.Status == ports.StatusOK {
			el.DistanceMeters = e.Distance.Value
			el.DurationSeconds = e.Duration.Value
		}
		elements = append(elements, el)
	}

	return ports.RouteBatch{Status: ports.StatusOK, Elements: elements}, nil
}
