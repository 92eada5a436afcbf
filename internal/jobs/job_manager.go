package jobs

import (
	"fmt"
	"log/slog"

	"parceltrack/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	idempotencySweepJob *IdempotencySweepJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(idempotencyStore ports.IdempotencyStore, logger *slog.Logger) *JobManager {
	return &JobManager{
		idempotencySweepJob: NewIdempotencySweepJob(idempotencyStore, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.idempotencySweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start idempotency sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.idempotencySweepJob.Stop()
}
