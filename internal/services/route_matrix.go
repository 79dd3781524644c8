package services

import (
	"apartment-geo-enrich/internal/domain"
	"apartment-geo-enrich/internal/platform/obs"
	"apartment-geo-enrich/internal/ports"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultBatchSize is the destination cap of the Distance Matrix API.
const DefaultBatchSize = 25

// Locator picks the waypoint a backend routes from or to.
type Locator func(domain.Entity) domain.Location

// ByAddress routes from the entity address.
func ByAddress(e domain.Entity) domain.Location { return domain.AddressLocation(e.Address) }

// ByCoordinates routes to the entity position, leaving the location empty
// when the entity has none.
func ByCoordinates(e domain.Entity) domain.Location {
	if e.Coords == nil {
		return domain.Location{}
	}
	return domain.CoordinateLocation(*e.Coords)
}

type RouteMatrixRequest struct {
	Mode domain.TravelMode
	// Destinations per request; 0 leaves only the backend cap.
	BatchSize    int
	LocateSource Locator
	LocateTarget Locator
}

type MatrixSummary struct {
	Sources   int
	Targets   int
	Requests  int
	Succeeded int
	Failed    int
}

func (s MatrixSummary) Pairs() int { return s.Succeeded + s.Failed }

// RouteMatrix routes every source to every target through the backend, one
// request per (source, batch of targets), paced by pacer. The result holds
// exactly one row per pair in source order then target order. Element,
// batch and transport failures become missing-value rows and never stop the
// run; only a cancelled context does.
func RouteMatrix(
	ctx context.Context,
	req RouteMatrixRequest,
	sourceRepo ports.EntityRepository,
	targetRepo ports.EntityRepository,
	provider ports.RouteMatrixProvider,
	pacer ports.Pacer,
) (_ []domain.PairResult, _ MatrixSummary, err error) {
	defer obs.Time(ctx, "route_matrix")(&err)

	sources, err := loadEntities(ctx, sourceRepo, "sources")
	if err != nil {
		return nil, MatrixSummary{}, fmt.Errorf("route matrix: %w", err)
	}
	targets, err := loadEntities(ctx, targetRepo, "targets")
	if err != nil {
		return nil, MatrixSummary{}, fmt.Errorf("route matrix: %w", err)
	}

	return routeAll(ctx, req, sources, targets, provider, pacer)
}

func routeAll(
	ctx context.Context,
	req RouteMatrixRequest,
	sources []domain.Entity,
	targets []domain.Entity,
	provider ports.RouteMatrixProvider,
	pacer ports.Pacer,
) ([]domain.PairResult, MatrixSummary, error) {
	if provider == nil {
		return nil, MatrixSummary{}, errors.New("route matrix: provider is nil")
	}
	if pacer == nil {
		return nil, MatrixSummary{}, errors.New("route matrix: pacer is nil")
	}
	if req.BatchSize < 0 {
		return nil, MatrixSummary{}, fmt.Errorf("route matrix: batch size must be >= 0, got %d", req.BatchSize)
	}
	if req.LocateSource == nil {
		req.LocateSource = ByAddress
	}
	if req.LocateTarget == nil {
		req.LocateTarget = ByAddress
	}

	log := obs.Logger(ctx).With(zap.String("mode", string(req.Mode)))
	size := effectiveBatchSize(req.BatchSize, provider.MaxDestinations())
	log.Info("computing route matrix",
		zap.Int("sources", len(sources)),
		zap.Int("targets", len(targets)),
		zap.Int("combinations", len(sources)*len(targets)),
		zap.Int("batch_size", size),
	)

	// Targets with no usable waypoint are never sent; they fail as elements.
	dests := make([]domain.Location, len(targets))
	routable := make([]int, 0, len(targets))
	for i, t := range targets {
		dests[i] = req.LocateTarget(t)
		if dests[i].IsZero() {
			log.Warn("target has no location", zap.String("target", t.Key))
			continue
		}
		routable = append(routable, i)
	}
	batches := partition(routable, size)

	summary := MatrixSummary{Sources: len(sources), Targets: len(targets)}
	out := make([]domain.PairResult, 0, len(sources)*len(targets))

	for si, s := range sources {
		log.Info("processing source",
			zap.Int("n", si+1),
			zap.Int("of", len(sources)),
			zap.String("source", label(s)),
		)

		row := make([]domain.PairResult, len(targets))
		for ti, t := range targets {
			row[ti] = domain.FailedPair(s.Key, t.Key, domain.OutcomeElementFailure)
		}

		origin := req.LocateSource(s)
		if origin.IsZero() {
			log.Warn("source has no location", zap.String("source", s.Key))
			for ti := range row {
				row[ti].Outcome = domain.OutcomeBatchFailure
			}
			out = appendCounted(out, row, &summary)
			continue
		}

		for bi, idx := range batches {
			if err := pacer.Wait(ctx); err != nil {
				return nil, summary, fmt.Errorf("route matrix: %w", err)
			}

			batch := make([]domain.Location, len(idx))
			for k, ti := range idx {
				batch[k] = dests[ti]
			}

			summary.Requests++
			res, err := provider.RouteBatch(ctx, origin, batch, req.Mode)
			if err != nil {
				if ctx.Err() != nil {
					return nil, summary, fmt.Errorf("route matrix: %w", ctx.Err())
				}
				log.Warn("batch transport failure",
					zap.String("source", s.Key),
					zap.Int("batch", bi+1),
					zap.Int("pairs", len(idx)),
					zap.Error(err),
				)
				markBatch(row, idx, domain.OutcomeTransportFailure)
				continue
			}

			if res.OK() && len(res.Elements) != len(idx) {
				res = ports.RouteBatch{
					Status:  ports.StatusInvalidResponse,
					Message: fmt.Sprintf("%d elements for %d destinations", len(res.Elements), len(idx)),
				}
			}
			if !res.OK() {
				log.Warn("batch request failed",
					zap.String("source", s.Key),
					zap.Int("batch", bi+1),
					zap.String("status", res.Status),
					zap.String("message", res.Message),
					zap.Int("pairs", len(idx)),
				)
				markBatch(row, idx, domain.OutcomeBatchFailure)
				continue
			}

			for k, ti := range idx {
				el := res.Elements[k]
				if !el.OK() {
					log.Warn("could not route pair",
						zap.String("source", s.Key),
						zap.String("target", targets[ti].Key),
						zap.String("status", el.Status),
					)
					continue
				}
				row[ti] = domain.PairResult{
					SourceKey:     s.Key,
					TargetKey:     targets[ti].Key,
					DistanceMiles: domain.MetersToMiles(el.DistanceMeters),
					DurationMin:   domain.SecondsToMinutes(el.DurationSeconds),
					Outcome:       domain.OutcomeSuccess,
				}
			}
		}

		out = appendCounted(out, row, &summary)
	}

	log.Info("route matrix done",
		zap.Int("pairs", summary.Pairs()),
		zap.Int("successful", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("requests", summary.Requests),
	)
	return out, summary, nil
}

// effectiveBatchSize is the smaller of the configured and backend caps,
// ignoring whichever is 0.
func effectiveBatchSize(configured, backend int) int {
	switch {
	case configured == 0:
		return backend
	case backend == 0:
		return configured
	case backend < configured:
		return backend
	default:
		return configured
	}
}

// partition splits idx into consecutive chunks of at most size; size 0
// yields a single chunk.
func partition(idx []int, size int) [][]int {
	if len(idx) == 0 {
		return nil
	}
	if size <= 0 || size >= len(idx) {
		return [][]int{idx}
	}
	out := make([][]int, 0, (len(idx)+size-1)/size)
	for start := 0; start < len(idx); start += size {
		end := min(start+size, len(idx))
		out = append(out, idx[start:end])
	}
	return out
}

func markBatch(row []domain.PairResult, idx []int, outcome domain.Outcome) {
	for _, ti := range idx {
		row[ti].Outcome = outcome
	}
}

func appendCounted(out, row []domain.PairResult, s *MatrixSummary) []domain.PairResult {
	for _, p := range row {
		if p.OK() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return append(out, row...)
}
