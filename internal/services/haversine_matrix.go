package services

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"context"
	"fmt"

	"go.uber.org/zap"
)

type HaversineSummary struct {
	Sources        int
	Targets        int
	SkippedSources int
	SkippedTargets int
	Pairs          int
}

// HaversineMatrix computes the great-circle distance of every source to
// every target. Entities without valid coordinates are excluded from the
// product and reported once each; they never produce rows.
func HaversineMatrix(
	ctx context.Context,
	sourceRepo ports.EntityRepository,
	targetRepo ports.EntityRepository,
) (_ []domain.PairResult, _ HaversineSummary, err error) {
	defer obs.Time(ctx, "haversine_matrix")(&err)

	sources, err := loadEntities(ctx, sourceRepo, "sources")
	if err != nil {
		return nil, HaversineSummary{}, fmt.Errorf("haversine matrix: %w", err)
	}
	targets, err := loadEntities(ctx, targetRepo, "targets")
	if err != nil {
		return nil, HaversineSummary{}, fmt.Errorf("haversine matrix: %w", err)
	}

	log := obs.Logger(ctx)
	log.Info("computing haversine distances",
		zap.Int("sources", len(sources)),
		zap.Int("targets", len(targets)),
		zap.Int("combinations", len(sources)*len(targets)),
	)

	validSources := withCoordinates(ctx, sources, "source")
	validTargets := withCoordinates(ctx, targets, "target")

	summary := HaversineSummary{
		Sources:        len(validSources),
		Targets:        len(validTargets),
		SkippedSources: len(sources) - len(validSources),
		SkippedTargets: len(targets) - len(validTargets),
	}

	out := make([]domain.PairResult, 0, len(validSources)*len(validTargets))
	for _, s := range validSources {
		if err := ctx.Err(); err != nil {
			return nil, summary, err
		}
		for _, t := range validTargets {
			out = append(out, domain.PairResult{
				SourceKey:     s.Key,
				TargetKey:     t.Key,
				DistanceMiles: domain.DistanceMiles(*s.Coords, *t.Coords),
				DurationMin:   domain.Missing(),
				Outcome:       domain.OutcomeSuccess,
			})
		}
	}
	summary.Pairs = len(out)

	log.Info("haversine distances done",
		zap.Int("pairs", summary.Pairs),
		zap.Int("sources_processed", summary.Sources),
		zap.Int("sources_skipped", summary.SkippedSources),
		zap.Int("targets_processed", summary.Targets),
		zap.Int("targets_skipped", summary.SkippedTargets),
	)
	return out, summary, nil
}

// withCoordinates drops entities with no usable position, logging each
// dropped key once.
func withCoordinates(ctx context.Context, entities []domain.Entity, role string) []domain.Entity {
	log := obs.Logger(ctx)
	out := make([]domain.Entity, 0, len(entities))
	for _, e := range entities {
		if !e.HasCoordinates() {
			log.Warn("skipping "+role+": invalid coordinates", zap.String("key", e.Key))
			continue
		}
		out = append(out, e)
	}
	return out
}
