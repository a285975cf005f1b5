// Package jobs provides scheduled background tasks for the shipping engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the label workflow.
//
// # Available Jobs
//
// 1. LabelReconciliationJob - Scans every five seconds for purchases the
// provider accepted asynchronously and re-polls each unresolved shipment on
// an exponential per-shipment backoff until the label generates or the
// provider rejects it.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshHandler, uowFactory, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation job uses the cron expression "*/5 * * * * *": the scan
// runs every five seconds, but each shipment is only polled once its own
// backoff window has elapsed.
//
// # Error Handling
//
// - A poll that loses the per-shipment lock to a manual attempt is skipped
// - Provider-unavailable errors back the shipment off and retry later
// - Provider rejections resolve the shipment and stop its polling
package jobs
