package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOutboxRelaySchedule runs the relay every second.
const DefaultOutboxRelaySchedule = "* * * * * *"

// OutboxRelayHandler publishes one batch of pending outbox messages.
type OutboxRelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob drains the outbox on a cron schedule. A run that is still
// going when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	handler   OutboxRelayHandler
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the job. An empty schedule uses
// DefaultOutboxRelaySchedule.
func NewOutboxRelayJob(handler OutboxRelayHandler, schedule string, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

// Start validates the batch size and schedules the relay.
func (j *OutboxRelayJob) Start() error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started",
		"schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) run(cmd commands.RelayOutboxCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	sent, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err, "sent", sent)
		return
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "Outbox relayed", "sent", sent)
	}
}
