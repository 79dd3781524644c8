package services

import (
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultAddressSuffix turns a street location into a geocodable address.
const DefaultAddressSuffix = ", Davis, CA"

// Location and classification values that mark a report with no usable place
// or type. Compared upper-cased.
var (
	invalidLocations       = []string{"UNKNOWN", "CASE NUMBER PULLED IN ERROR"}
	invalidClassifications = []string{"UNKNOWN"}
)

type GeocodeRequest struct {
	LocationColumn       string
	ClassificationColumn string
	KeyColumn            string
	LatColumn            string
	LngColumn            string
	Suffix               string
}

type GeocodeSummary struct {
	Initial               int
	InvalidLocation       int
	InvalidClassification int
	GeocodeFailed         int
	Final                 int
}

// GeocodeTable drops rows with no usable location or classification,
// geocodes the rest one by one and writes lat/lng columns. Rows the
// geocoder cannot resolve are dropped. A cancelled context aborts.
func GeocodeTable(
	ctx context.Context,
	req GeocodeRequest,
	t *tabular.Table,
	geocoder ports.Geocoder,
	pacer ports.Pacer,
) (_ GeocodeSummary, err error) {
	defer obs.Time(ctx, "geocode_table")(&err)

	if t == nil || geocoder == nil || pacer == nil {
		return GeocodeSummary{}, errors.New("geocode table: table, geocoder and pacer are required")
	}
	if req.LatColumn == "" || req.LngColumn == "" {
		return GeocodeSummary{}, errors.New("geocode table: lat/lng column names must be set")
	}
	cols := []string{req.LocationColumn, req.ClassificationColumn}
	if req.KeyColumn != "" {
		cols = append(cols, req.KeyColumn)
	}
	if err := t.Require(cols...); err != nil {
		return GeocodeSummary{}, fmt.Errorf("geocode table: %w", err)
	}

	log := obs.Logger(ctx)
	summary := GeocodeSummary{Initial: t.Len()}

	summary.InvalidLocation = t.Filter(func(i int) bool {
		return usable(t.Value(i, req.LocationColumn), invalidLocations)
	})
	log.Info("removed rows with invalid location", zap.Int("rows", summary.InvalidLocation))

	summary.InvalidClassification = t.Filter(func(i int) bool {
		return usable(t.Value(i, req.ClassificationColumn), invalidClassifications)
	})
	log.Info("removed rows with invalid classification", zap.Int("rows", summary.InvalidClassification))
	log.Info("rows to geocode", zap.Int("rows", t.Len()))

	t.AddColumn(req.LatColumn)
	t.AddColumn(req.LngColumn)

	resolved := make([]bool, t.Len())
	for i := range t.Rows {
		if err := pacer.Wait(ctx); err != nil {
			return summary, fmt.Errorf("geocode table: %w", err)
		}

		location := t.Value(i, req.LocationColumn)
		address := location + req.Suffix
		rowLog := log.With(
			zap.Int("n", i+1),
			zap.Int("of", t.Len()),
			zap.String("location", location),
		)
		if req.KeyColumn != "" {
			rowLog = rowLog.With(zap.String("key", t.Value(i, req.KeyColumn)))
		}

		coords, found, err := geocoder.Geocode(ctx, address)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return summary, fmt.Errorf("geocode table: %w", ctx.Err())
			}
			rowLog.Warn("geocoding failed", zap.Error(err))
		case !found:
			rowLog.Warn("no geocoding results found")
		default:
			t.Set(i, req.LatColumn, tabular.FormatFloat(coords.Lat))
			t.Set(i, req.LngColumn, tabular.FormatFloat(coords.Lon))
			resolved[i] = true
			rowLog.Debug("geocoded", zap.Float64("lat", coords.Lat), zap.Float64("lng", coords.Lon))
		}
	}

	summary.GeocodeFailed = t.Filter(func(i int) bool { return resolved[i] })
	summary.Final = t.Len()

	log.Info("geocoding done",
		zap.Int("initial", summary.Initial),
		zap.Int("invalid_location", summary.InvalidLocation),
		zap.Int("invalid_classification", summary.InvalidClassification),
		zap.Int("geocode_failed", summary.GeocodeFailed),
		zap.Int("final", summary.Final),
	)
	return summary, nil
}

func usable(v string, invalid []string) bool {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return false
	}
	for _, bad := range invalid {
		if v == bad {
			return false
		}
	}
	return true
}
