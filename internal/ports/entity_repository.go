package ports

import (
	"apartment-geo-enrich/internal/domain"
	"context"
)

// Port: a boundary for loading the entities on one side of a pairwise run.
type EntityRepository interface {
	ListEntities(ctx context.Context) ([]domain.Entity, error)
}
