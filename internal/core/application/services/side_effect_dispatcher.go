package services

import (
	"context"
	"log/slog"

	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/core/domain/model/status"
	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"
)

// Effect is one side effect fired after a status transition.
type Effect func(ctx context.Context, o *order.Order) error

// SideEffectDispatcher maps status codes to the side effects a transition
// into that status fires: customer notifications and invoice issuing.
//
// Effects are strictly best-effort. A failing effect is logged and the
// remaining effects still run; the transition itself is already persisted and
// is never rolled back because a notification bounced. Statuses without an
// entry in the table fire nothing, which is also what every operator-created
// status gets by default.
type SideEffectDispatcher struct {
	notifier ports.NotificationSender
	invoicer ports.InvoiceIssuer
	logger   *slog.Logger
	effects  map[string][]Effect
}

// NewSideEffectDispatcher creates a dispatcher with the default effect table.
// The invoice issuer is optional: when nil, invoice effects fail with
// errs.CollaboratorNotConfiguredError, which is logged like any other effect
// failure and never blocks a transition.
func NewSideEffectDispatcher(
	notifier ports.NotificationSender,
	invoicer ports.InvoiceIssuer,
	logger *slog.Logger,
) (*SideEffectDispatcher, error) {
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	d := &SideEffectDispatcher{
		notifier: notifier,
		invoicer: invoicer,
		logger:   logger.With("component", "side-effects"),
		effects:  make(map[string][]Effect),
	}

	d.Register(status.CodePaid, d.notify("order-paid"))
	d.Register(status.CodePaid, d.issueInvoice(false))
	d.Register(status.CodePreparing, d.notify("order-preparing"))
	d.Register(status.CodeSent, d.notify("order-sent"))
	d.Register(status.CodeStorno, d.notify("order-storno"))
	d.Register(status.CodeDone, d.issueInvoice(true))

	return d, nil
}

// Register appends an effect to the given status code. Registered effects run
// in registration order, after the defaults.
func (d *SideEffectDispatcher) Register(statusCode string, effect Effect) {
	d.effects[statusCode] = append(d.effects[statusCode], effect)
}

// Dispatch fires all effects registered for the status code the order landed
// on. Failures are logged and swallowed.
func (d *SideEffectDispatcher) Dispatch(ctx context.Context, o *order.Order, statusCode string) {
	for _, effect := range d.effects[statusCode] {
		if err := effect(ctx, o); err != nil {
			d.logger.Warn("side effect failed",
				"order", o.Number(),
				"status", statusCode,
				"error", err)
		}
	}
}

func (d *SideEffectDispatcher) notify(templateKey string) Effect {
	return func(ctx context.Context, o *order.Order) error {
		return d.notifier.Notify(ctx, o, templateKey)
	}
}

// issueInvoice creates an invoice for the order. With onlyIfMissing the
// effect first asks the invoicing system whether an invoice already exists,
// so the terminal status does not duplicate an invoice issued at payment.
func (d *SideEffectDispatcher) issueInvoice(onlyIfMissing bool) Effect {
	return func(ctx context.Context, o *order.Order) error {
		if d.invoicer == nil {
			return errs.NewCollaboratorNotConfiguredError("invoiceIssuer")
		}

		if onlyIfMissing {
			invoiced, err := d.invoicer.IsInvoiced(ctx, o)
			if err != nil {
				return err
			}
			if invoiced {
				return nil
			}
		}

		_, err := d.invoicer.CreateInvoice(ctx, o)
		return err
	}
}
