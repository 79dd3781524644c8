package ports

import (
	"apartment-geo-enrich/internal/domain"
	"context"
)

// Batch-level statuses shared by the routing backends.
const (
	StatusOK       = "OK"
	StatusNotFound = "NOT_FOUND"
	StatusNoRoute  = "ZERO_RESULTS"
	// Reported when a backend answer does not line up with the request.
	StatusInvalidResponse = "INVALID_RESPONSE"
)

// Raw metrics for one origin -> destination element, in backend units.
type RouteElement struct {
	Status          string
	DistanceMeters  float64
	DurationSeconds float64
}

func (e RouteElement) OK() bool { return e.Status == StatusOK }

// Answer of a routing backend for one origin and a batch of destinations.
// Elements are in destination order when Status is OK.
type RouteBatch struct {
	Status   string
	Message  string
	Elements []RouteElement
}

func (b RouteBatch) OK() bool { return b.Status == StatusOK }

// Contract for a routing backend that resolves one origin against many destinations.
type RouteMatrixProvider interface {
	// Return per-destination metrics. A returned error is a transport failure;
	// a non-OK RouteBatch.Status is a batch failure reported by the backend.
	RouteBatch(ctx context.Context, origin domain.Location, destinations []domain.Location, mode domain.TravelMode) (RouteBatch, error)
	// Largest destination list accepted per request; 0 means no cap.
	MaxDestinations() int
}
