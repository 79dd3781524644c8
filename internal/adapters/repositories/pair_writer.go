package repositories

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/tabular"
	"fmt"
)

const (
	DistanceColumn = "distance_miles"
	DurationColumn = "time_min"
)

// Layout of a long-format pair table.
type PairColumns struct {
	Source       string
	Target       string
	WithDuration bool
}

// PairsTable lays out one row per pair: source key, target key, distance
// and, when requested, duration. Missing values become empty cells.
func PairsTable(cols PairColumns, pairs []domain.PairResult) *tabular.Table {
	header := []string{cols.Source, cols.Target, DistanceColumn}
	if cols.WithDuration {
		header = append(header, DurationColumn)
	}

	t := tabular.New(header...)
	t.Rows = make([][]string, 0, len(pairs))
	for _, p := range pairs {
		row := []string{p.SourceKey, p.TargetKey, tabular.FormatFloat(p.DistanceMiles)}
		if cols.WithDuration {
			row = append(row, tabular.FormatFloat(p.DurationMin))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// WritePairs materializes pairs to path.
func WritePairs(path string, cols PairColumns, pairs []domain.PairResult) error {
	if err := PairsTable(cols, pairs).WriteFile(path); err != nil {
		return fmt.Errorf("write pairs %q: %w", path, err)
	}
	return nil
}
