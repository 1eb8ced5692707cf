// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision).
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending outbox messages (orders.placed,
// deliveries.accepted) to the broker and marks them sent
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, "* * * * * *", 100, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed relay run is logged and retried on the next tick; messages that
// were not published stay pending.
package jobs
