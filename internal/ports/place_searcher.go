package ports

import (
	"apartment-geo-enrich/internal/domain"
	"context"
)

type Place struct {
	PlaceID          string
	Name             string
	Address          string
	Coords           domain.Coordinates
	Rating           *float64
	UserRatingsTotal *int
	Types            []string
}

// A text query biased to a circle, or a continuation of an earlier query.
type PlaceQuery struct {
	Text         string
	Center       domain.Coordinates
	RadiusMeters int
	PageToken    string
}

type PlacePage struct {
	Places        []Place
	NextPageToken string
}

// Contract for a text search over points of interest.
type PlaceSearcher interface {
	SearchText(ctx context.Context, q PlaceQuery) (PlacePage, error)
}
