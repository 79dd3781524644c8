package ports

import (
	"apartment-geo-enrich/internal/domain"
	"context"
)

// Persistent store of successful route elements keyed by (mode, origin, destination).
// Keys are Location.Key values.
type RouteCache interface {
	GetMany(ctx context.Context, mode domain.TravelMode, origin string, destinations []string) (map[string]RouteElement, error)
	PutMany(ctx context.Context, mode domain.TravelMode, origin string, results map[string]RouteElement) error
}

// Store of address -> coordinates. Keys are normalized addresses.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
