package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	outboxRelayJob *OutboxRelayJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	relayHandler OutboxRelayHandler,
	relaySchedule string,
	relayBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob: NewOutboxRelayJob(relayHandler, relaySchedule, relayBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
