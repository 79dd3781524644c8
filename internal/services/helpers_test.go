package services

import (
	"apartment-geo-enrich/internal/domain"
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type sliceRepo []domain.Entity

func (r sliceRepo) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	return append([]domain.Entity(nil), r...), nil
}

// observeLogs routes the global logger into memory for the rest of the test.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(undo)
	return logs
}

// countingPacer never blocks and records how often it was asked.
type countingPacer struct{ waits int }

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	return ctx.Err()
}

func addressEntities(prefix string, n int) []domain.Entity {
	out := make([]domain.Entity, n)
	for i := range out {
		out[i] = domain.Entity{
			Key:     fmt.Sprintf("%s%d", prefix, i+1),
			Address: fmt.Sprintf("%d %s St", i+1, prefix),
		}
	}
	return out
}
