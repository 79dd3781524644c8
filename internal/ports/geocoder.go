package ports

import (
	"apartment-geo-enrich/internal/domain"
	"context"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	// found is false when the backend answered but had no match.
	Geocode(ctx context.Context, address string) (coords domain.Coordinates, found bool, err error)
}
