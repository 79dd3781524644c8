package repositories

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/tabular"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column names an entity is read from. Empty names are not read.
type EntityColumns struct {
	Key     string
	Name    string
	Address string
	Lat     string
	Lng     string
}

func (c EntityColumns) required() []string {
	cols := []string{c.Key}
	for _, n := range []string{c.Name, c.Address, c.Lat, c.Lng} {
		if n != "" {
			cols = append(cols, n)
		}
	}
	return cols
}

// CSV-backed implementation of the EntityRepository port.
type CSVEntityRepository struct {
	Table   *tabular.Table
	Columns EntityColumns
}

// NewCSVEntityRepository fails when a configured column is absent so that a
// bad input aborts before any backend is called.
func NewCSVEntityRepository(t *tabular.Table, cols EntityColumns) (*CSVEntityRepository, error) {
	if t == nil {
		return nil, errors.New("csv entity repository: table is nil")
	}
	if strings.TrimSpace(cols.Key) == "" {
		return nil, errors.New("csv entity repository: key column must be set")
	}
	if err := t.Require(cols.required()...); err != nil {
		return nil, fmt.Errorf("csv entity repository: %w", err)
	}
	return &CSVEntityRepository{Table: t, Columns: cols}, nil
}

// Return one entity per row, in file order. Rows whose position does not
// parse get nil Coords.
func (r *CSVEntityRepository) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	if r.Table == nil {
		return nil, errors.New("csv entity repository: table is nil")
	}

	out := make([]domain.Entity, 0, r.Table.Len())
	for i := range r.Table.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e := domain.Entity{
			Key:     strings.TrimSpace(r.Table.Value(i, r.Columns.Key)),
			Name:    r.Table.Value(i, r.Columns.Name),
			Address: r.Table.Value(i, r.Columns.Address),
		}
		if r.Columns.Lat != "" && r.Columns.Lng != "" {
			e.Coords = parseCoordinates(r.Table.Value(i, r.Columns.Lat), r.Table.Value(i, r.Columns.Lng))
		}
		out = append(out, e)
	}

	return out, nil
}

func parseCoordinates(lat, lng string) *domain.Coordinates {
	la, ok := parseFinite(lat)
	if !ok {
		return nil
	}
	lo, ok := parseFinite(lng)
	if !ok {
		return nil
	}
	return &domain.Coordinates{Lat: la, Lon: lo}
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
