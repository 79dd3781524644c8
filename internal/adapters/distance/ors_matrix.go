package distance

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/ports"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixRow retrieves distance and duration from one origin to many
// destinations using the OpenRouteService matrix endpoint. Unroutable pairs
// come back as null entries and become ZERO_RESULTS elements.
func (o *ORSProvider) fetchMatrixRow(
	ctx context.Context,
	profile string,
	originCoord domain.Coordinates,
	destinationCoords []domain.Coordinates,
) ([]ports.RouteElement, error) {
	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, profile)

	locations := make([][]float64, 0, 1+len(destinationCoords))
	locations = append(locations, originCoord.CoordsToList())
	for _, c := range destinationCoords {
		locations = append(locations, c.CoordsToList())
	}

	destIdx := make([]int, 0, len(destinationCoords))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
		Sources:      []int{0},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, 1, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}

	rowDistances := mr.Distances[0]
	rowDurations := mr.Durations[0]
	if len(rowDistances) != len(rowDurations) {
		return nil, fmt.Errorf(
			"row lengths differ: distances=%d durations=%d",
			len(rowDistances), len(rowDurations),
		)
	}

	out := make([]ports.RouteElement, len(rowDistances))
	for i := range rowDistances {
		metersPtr := rowDistances[i]
		secondsPtr := rowDurations[i]

		if metersPtr == nil || secondsPtr == nil {
			out[i] = ports.RouteElement{Status: ports.StatusNoRoute}
			continue
		}

		out[i] = ports.RouteElement{
			Status:          ports.StatusOK,
			DistanceMeters:  *metersPtr,
			DurationSeconds: *secondsPtr,
		}
	}

	return out, nil
}
