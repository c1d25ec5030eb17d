package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleSearchWatchdogJob *StaleSearchWatchdogJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	getOrdersByStateHandler queries.GetOrdersByStateQueryHandler,
	staleSearchThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleSearchWatchdogJob: NewStaleSearchWatchdogJob(getOrdersByStateHandler, staleSearchThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleSearchWatchdogJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale search watchdog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleSearchWatchdogJob.Stop()
}
