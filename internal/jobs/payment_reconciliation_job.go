package jobs

import (
	"context"
	"log/slog"

	"shoporder/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentReconciliationJob runs the periodic payment reconciliation: bank
// feed matching, stale-order cancellation, payment reminders and
// auto-completion of idle sent orders.
type PaymentReconciliationJob struct {
	handler  commands.ReconcilePaymentsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPaymentReconciliationJob creates the reconciliation job with the given
// cron schedule (standard five-field expression).
func NewPaymentReconciliationJob(
	handler commands.ReconcilePaymentsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	return &PaymentReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "payment_reconciliation_job"),
	}
}

// Start schedules the reconciliation runs.
func (j *PaymentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcilePaymentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// Phase errors are already logged with context by the handler;
			// this is the summary line for the run.
			j.logger.ErrorContext(ctx, "Payment reconciliation run finished with errors", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *PaymentReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}
