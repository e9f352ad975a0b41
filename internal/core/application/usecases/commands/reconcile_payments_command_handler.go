package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shoporder/internal/core/application/services"
	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/core/domain/model/status"
	domainservices "shoporder/internal/core/domain/services"
	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ReconcilePaymentsCommandHandler runs the periodic payment reconciliation.
//
// A run has four independent phases, executed in order:
//
//  1. match incoming bank transactions against outstanding orders
//  2. cancel orders that waited past the cancel threshold
//  3. send at-most-one payment reminder to orders past the reminder threshold
//  4. auto-complete sent orders that have been idle past the completion threshold
//
// Each phase works in its own transaction scope and a failing phase never
// stops the following ones; the run returns the joined phase errors so the
// job can log them. Bank matching goes further and commits each matched
// transaction separately, so one bad row cannot roll back the matches before
// it and a feed outage mid-run loses nothing already applied.
type ReconcilePaymentsCommandHandler struct {
	uowFactory ReconcileUoWFactory
	bank       ports.BankAuthorizator
	notifier   ports.NotificationSender
	engine     *services.TransitionEngine
	planner    domainservices.SweepPlanner
	tolerance  decimal.Decimal
	clock      func() time.Time
	logger     *slog.Logger
}

// NewReconcilePaymentsCommandHandler creates a handler for reconciliation runs.
func NewReconcilePaymentsCommandHandler(
	uowFactory ReconcileUoWFactory,
	bank ports.BankAuthorizator,
	notifier ports.NotificationSender,
	engine *services.TransitionEngine,
	planner domainservices.SweepPlanner,
	tolerance decimal.Decimal,
	clock func() time.Time,
	logger *slog.Logger,
) ReconcilePaymentsCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return ReconcilePaymentsCommandHandler{
		uowFactory: uowFactory,
		bank:       bank,
		notifier:   notifier,
		engine:     engine,
		planner:    planner,
		tolerance:  tolerance,
		clock:      clock,
		logger:     logger.With("component", "payment-reconciler"),
	}
}

// Handle runs all four reconciliation phases.
func (h *ReconcilePaymentsCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	phases := []struct {
		name string
		run  func(context.Context) error
	}{
		{"bank-match", h.matchBankTransactions},
		{"cancel-stale", h.cancelStaleOrders},
		{"payment-reminders", h.pingUnpaidOrders},
		{"auto-complete", h.completeSentOrders},
	}

	var phaseErrs []error
	for _, phase := range phases {
		if err := phase.run(ctx); err != nil {
			h.logger.Error("reconciliation phase failed",
				"phase", phase.name,
				"error", err)
			phaseErrs = append(phaseErrs, err)
		}
	}

	return errors.Join(phaseErrs...)
}

// matchBankTransactions runs the bank phase: ingest the feed's transactions
// that name an outstanding order, then authorize them against the expected
// amounts. The outstanding orders are read first in a short-lived transaction;
// the ingested records are flushed before the authorization pass, and each
// match is then applied and committed on its own.
func (h *ReconcilePaymentsCommandHandler) matchBankTransactions(ctx context.Context) error {
	outstanding, err := h.loadOutstandingOrders(ctx)
	if err != nil {
		return err
	}
	if len(outstanding) == 0 {
		return nil
	}

	candidates := make([]string, 0, len(outstanding))
	paidNumbers := make(map[string]bool)
	expected := make(map[string]kernel.Money, len(outstanding))
	for _, o := range outstanding {
		candidates = append(candidates, o.Number())
		if o.IsPaid() {
			paidNumbers[o.Number()] = true
			continue
		}
		expected[o.Number()] = o.EffectivePrice()
	}

	if err := h.ingestUnmatchedTransactions(ctx, candidates, paidNumbers); err != nil {
		return err
	}

	if len(expected) == 0 {
		return nil
	}
	return h.bank.Authorize(ctx, expected, h.tolerance, h.applyBankMatch)
}

func (h *ReconcilePaymentsCommandHandler) loadOutstandingOrders(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllInStatusCode(ctx, status.CodeNew)
}

// ingestUnmatchedTransactions records feed transactions that name an
// outstanding order as unlinked bank payments. A transaction already recorded
// under its external id is skipped, as is one whose correlation key belongs to
// a fully paid order (a second transfer must not recount) and any non-positive
// row. The authorization pass later links the records it can match.
func (h *ReconcilePaymentsCommandHandler) ingestUnmatchedTransactions(
	ctx context.Context,
	candidates []string,
	paidNumbers map[string]bool,
) error {
	transactions, err := h.bank.UnmatchedTransactions(ctx, candidates)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock().UTC()
	ingested := 0
	for _, tx := range transactions {
		if !tx.Amount.IsPositive() {
			continue
		}
		if paidNumbers[tx.VariableSymbol] {
			continue
		}

		exists, err := uow.BankPaymentRepository().ExistsByTransactionID(ctx, tx.TransactionID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		payment, err := order.NewBankPayment(
			kernel.NewUUID(),
			tx.TransactionID,
			tx.Amount,
			tx.Currency,
			tx.VariableSymbol,
			now,
		)
		if err != nil {
			return err
		}
		if err := uow.BankPaymentRepository().Add(ctx, payment); err != nil {
			return err
		}
		ingested++
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if ingested > 0 {
		h.logger.Info("unmatched bank transactions ingested", "count", ingested)
	}
	return nil
}

// applyBankMatch records one matched transaction, links it to the order and
// marks the order paid. The transaction may already exist as an unlinked
// record from the ingestion pass; then only the link is written. Committing
// per match keeps re-runs cheap: an already-linked row on a paid order makes
// the whole call a no-op.
func (h *ReconcilePaymentsCommandHandler) applyBankMatch(ctx context.Context, tx ports.BankTransaction, orderNumber string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByNumber(ctx, orderNumber)
	if err != nil {
		return err
	}

	now := h.clock().UTC()
	payment, err := uow.BankPaymentRepository().GetByTransactionID(ctx, tx.TransactionID)
	switch {
	case err == nil:
		if payment.OrderID() == nil {
			if err := payment.LinkOrder(o.ID()); err != nil {
				return err
			}
			if err := uow.BankPaymentRepository().Update(ctx, payment); err != nil {
				return err
			}
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		payment, err = order.NewBankPayment(
			kernel.NewUUID(),
			tx.TransactionID,
			tx.Amount,
			tx.Currency,
			tx.VariableSymbol,
			now,
		)
		if err != nil {
			return err
		}
		if err := payment.LinkOrder(o.ID()); err != nil {
			return err
		}
		if err := uow.BankPaymentRepository().Add(ctx, payment); err != nil {
			return err
		}
	default:
		return err
	}

	if !o.IsPaid() {
		o.MarkPaid(now)
		if err := h.engine.Transition(ctx, uow, o, status.CodePaid); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("bank transaction matched",
		"order", o.Number(),
		"transaction", tx.TransactionID,
		"amount", tx.Amount.String())
	return nil
}

// cancelStaleOrders moves orders past the cancel threshold to storno.
func (h *ReconcilePaymentsCommandHandler) cancelStaleOrders(ctx context.Context) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outstanding, err := uow.OrderRepository().GetAllInStatusCode(ctx, status.CodeNew)
	if err != nil {
		return err
	}

	now := h.clock().UTC()
	cancelled := 0
	for _, o := range outstanding {
		if o.IsPaid() {
			continue
		}
		if h.planner.PlanOutstanding(now, o.InsertedAt(), o.Pinged()) != domainservices.SweepCancel {
			continue
		}
		if err := h.engine.Transition(ctx, uow, o, status.CodeStorno); err != nil {
			return err
		}
		cancelled++
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if cancelled > 0 {
		h.logger.Info("stale orders cancelled", "count", cancelled)
	}
	return nil
}

// pingUnpaidOrders sends the one-time payment reminder. The pinged flag is
// set only after the notification went out; a failed send is retried on the
// next run, a sent one is never repeated.
func (h *ReconcilePaymentsCommandHandler) pingUnpaidOrders(ctx context.Context) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outstanding, err := uow.OrderRepository().GetAllInStatusCode(ctx, status.CodeNew)
	if err != nil {
		return err
	}

	now := h.clock().UTC()
	for _, o := range outstanding {
		if o.IsPaid() {
			continue
		}
		if h.planner.PlanOutstanding(now, o.InsertedAt(), o.Pinged()) != domainservices.SweepPing {
			continue
		}

		if err := h.notifier.Notify(ctx, o, "payment-reminder"); err != nil {
			h.logger.Warn("payment reminder failed",
				"order", o.Number(),
				"error", err)
			continue
		}

		o.MarkPinged()
		if err := uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// completeSentOrders moves idle sent orders to done.
func (h *ReconcilePaymentsCommandHandler) completeSentOrders(ctx context.Context) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock().UTC()
	idle, err := uow.OrderRepository().GetAllInStatusCodeUpdatedBefore(
		ctx, status.CodeSent, h.planner.CompleteCutoff(now))
	if err != nil {
		return err
	}

	for _, o := range idle {
		if !h.planner.ShouldComplete(now, o.UpdatedAt()) {
			continue
		}
		if err := h.engine.Transition(ctx, uow, o, status.CodeDone); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
