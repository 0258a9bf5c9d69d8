package reconciler

import (
	"context"
	"log/slog"
	"time"
)

const (
	passTimeout = 30 * time.Second
	batchSize   = 100
)

//go:generate mockgen -source=reconciler.go -destination=../mocks/mock_reconciler.go -package=mocks

type IncidentReconciler interface {
	ReconcileIncidents(ctx context.Context, limit int) (int, error)
}

// Run retries open settlement incidents every interval until ctx is cancelled.
func Run(ctx context.Context, r IncidentReconciler, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runPass(ctx, r, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping settlement reconciler")
			return
		case <-ticker.C:
			runPass(ctx, r, logger)
		}
	}
}

func runPass(ctx context.Context, r IncidentReconciler, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, passTimeout)
	defer cancel()

	resolved, err := r.ReconcileIncidents(ctx, batchSize)
	if err != nil {
		logger.Error("Settlement reconciliation failed", slog.Any("err", err))
		return
	}
	if resolved > 0 {
		logger.Info("Settlement incidents resolved", slog.Int("count", resolved))
	}
}
