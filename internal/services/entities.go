package services

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// loadEntities lists the entities of one side of a pairwise run. Rows with an
// empty key are dropped, and a repeated key keeps its first row so that the
// output never holds the same (source, target) pair twice.
func loadEntities(ctx context.Context, repo ports.EntityRepository, side string) ([]domain.Entity, error) {
	if repo == nil {
		return nil, fmt.Errorf("load %s: repository is nil", side)
	}
	all, err := repo.ListEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", side, err)
	}

	log := obs.Logger(ctx)
	seen := make(map[string]struct{}, len(all))
	out := make([]domain.Entity, 0, len(all))
	for i, e := range all {
		if strings.TrimSpace(e.Key) == "" {
			log.Warn("entity without key dropped", zap.String("side", side), zap.Int("row", i+1))
			continue
		}
		if _, dup := seen[e.Key]; dup {
			log.Warn("duplicate entity key dropped", zap.String("side", side), zap.String("key", e.Key))
			continue
		}
		seen[e.Key] = struct{}{}
		out = append(out, e)
	}
	return out, nil
}

// label names an entity in progress logs.
func label(e domain.Entity) string {
	if e.Name != "" {
		return e.Name
	}
	return e.Key
}
