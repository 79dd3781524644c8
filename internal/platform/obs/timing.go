package obs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID tags ctx with a fresh run id.
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, RunIDKey, uuid.NewString())
}

func RunID(ctx context.Context) string {
	id, _ := ctx.Value(RunIDKey).(string)
	return id
}

// Logger returns the global logger tagged with the run id of ctx.
func Logger(ctx context.Context) *zap.Logger {
	if id := RunID(ctx); id != "" {
		return zap.L().With(zap.String("run_id", id))
	}
	return zap.L()
}

// Time logs the duration of an operation at debug level, or at warn level
// when it failed. Use as: defer obs.Time(ctx, "op")(&err).
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		log := Logger(ctx).With(zap.String("op", name), zap.Duration("dur", time.Since(start)))

		if errp != nil && *errp != nil {
			log.Warn("operation failed", zap.Error(*errp))
			return
		}
		log.Debug("operation done")
	}
}
