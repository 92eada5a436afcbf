package jobs

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// IdempotencySweepJob deletes expired idempotency records on a schedule.
// Expired records already read as absent; the sweep only reclaims storage.
type IdempotencySweepJob struct {
	store  ports.IdempotencyStore
	cron   *cron.Cron
	logger *slog.Logger
}

// NewIdempotencySweepJob creates a job that sweeps the idempotency store
// once an hour.
func NewIdempotencySweepJob(store ports.IdempotencyStore, logger *slog.Logger) *IdempotencySweepJob {
	return &IdempotencySweepJob{
		store:  store,
		cron:   cron.New(),
		logger: logger.With("component", "idempotency_sweep_job"),
	}
}

// Start begins the hourly sweep.
func (j *IdempotencySweepJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		deleted, sweepErr := j.store.DeleteExpired(ctx, time.Now().UTC())
		if sweepErr != nil {
			j.logger.ErrorContext(ctx, "Idempotency sweep failed", "error", sweepErr)
			return
		}
		if deleted > 0 {
			j.logger.InfoContext(ctx, "Idempotency sweep completed", "deleted", deleted)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Idempotency sweep job started (running hourly)")
	return nil
}

// Stop stops the sweep job.
func (j *IdempotencySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Idempotency sweep job stopped")
}
