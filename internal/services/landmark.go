package services

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"fmt"
	"strings"
)

type LandmarkRequest struct {
	Destination    string
	Mode           domain.TravelMode
	DistanceColumn string
	DurationColumn string
	LocateSource   Locator
}

// AppendLandmark routes every row of t to a single destination and writes
// the distance and travel time into two new columns. sourceRepo must list
// exactly one entity per row of t, in row order. Failed rows get empty
// cells.
func AppendLandmark(
	ctx context.Context,
	req LandmarkRequest,
	t *tabular.Table,
	sourceRepo ports.EntityRepository,
	provider ports.RouteMatrixProvider,
	pacer ports.Pacer,
) (_ MatrixSummary, err error) {
	defer obs.Time(ctx, "landmark")(&err)

	if t == nil || sourceRepo == nil {
		return MatrixSummary{}, errors.New("landmark: table and source repository are required")
	}
	if strings.TrimSpace(req.Destination) == "" {
		return MatrixSummary{}, errors.New("landmark: destination must be non-empty")
	}
	if req.DistanceColumn == "" || req.DurationColumn == "" {
		return MatrixSummary{}, errors.New("landmark: output column names must be set")
	}

	sources, err := sourceRepo.ListEntities(ctx)
	if err != nil {
		return MatrixSummary{}, fmt.Errorf("landmark: list sources: %w", err)
	}
	if len(sources) != t.Len() {
		return MatrixSummary{}, fmt.Errorf("landmark: %d sources for %d rows", len(sources), t.Len())
	}

	target := domain.Entity{Key: req.Destination, Address: req.Destination}
	results, summary, err := routeAll(ctx, RouteMatrixRequest{
		Mode:         req.Mode,
		BatchSize:    1,
		LocateSource: req.LocateSource,
		LocateTarget: ByAddress,
	}, sources, []domain.Entity{target}, provider, pacer)
	if err != nil {
		return summary, fmt.Errorf("landmark: %w", err)
	}

	t.AddColumn(req.DistanceColumn)
	t.AddColumn(req.DurationColumn)
	for i, r := range results {
		t.Set(i, req.DistanceColumn, tabular.FormatFloat(r.DistanceMiles))
		t.Set(i, req.DurationColumn, tabular.FormatFloat(r.DurationMin))
	}
	return summary, nil
}
