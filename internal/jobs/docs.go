// Package jobs provides scheduled background tasks for the order lifecycle.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PaymentReconciliationJob - Periodically matches the bank feed against
// outstanding orders, cancels orders past the cancel threshold, sends the
// one-time payment reminder and auto-completes idle sent orders.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reconcileHandler, "*/10 * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation schedule is configurable (standard five-field cron
// expression). The run is idempotent end to end: recorded bank transactions,
// the pinged flag and already-applied transitions make re-runs no-ops, so an
// aggressive schedule is safe.
//
// # Error Handling
//
// The reconciliation handler runs its phases independently and returns the
// joined phase errors; the job logs the summary and waits for the next tick.
package jobs
