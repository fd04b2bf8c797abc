package middle

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	zap "go.uber.org/zap"
)

// Stage is one step of a pipeline run.
type Stage func(ctx context.Context) error

// Stages slower than this are reported at warn level.
const slowStage = 5 * time.Second

type ctxKey int

const runIDKey ctxKey = iota

func NewRunID() string {
	return uuid.New().String()
}

func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFrom returns the run id stored in ctx, or "" if there is none.
func RunIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// LoggingMiddleware logs each stage with its duration, and turns a panic
// inside the stage into an error.
func LoggingMiddleware(logger *zap.Logger, name string) func(Stage) Stage {
	return func(next Stage) Stage {
		return func(ctx context.Context) (err error) {
			start := time.Now()
			log := logger.With(zap.String("stage", name), zap.String("run_id", RunIDFrom(ctx)))

			defer func() {
				if p := recover(); p != nil {
					log.Error("Stage panicked",
						zap.Any("panic", p),
						zap.String("stack", string(debug.Stack())),
					)
					err = fmt.Errorf("stage %s: panic: %v", name, p)
				}

				duration := time.Since(start)
				if err != nil {
					log.Debug("Stage failed", zap.Duration("duration", duration), zap.Error(err))
				} else {
					log.Debug("Stage completed", zap.Duration("duration", duration))
				}

				if duration > slowStage {
					log.Warn("Slow stage", zap.Duration("duration", duration))
				}
			}()

			return next(ctx)
		}
	}
}

// Chain runs stages in order and stops at the first error.
func Chain(ctx context.Context, logger *zap.Logger, stages []NamedStage) error {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := LoggingMiddleware(logger, s.Name)(s.Run)(ctx); err != nil {
			return err
		}
	}
	return nil
}

type NamedStage struct {
	Name string
	Run  Stage
}
