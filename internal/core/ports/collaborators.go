package ports

import (
	"context"
	"time"

	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/core/domain/model/status"
)

// NotificationSender delivers customer notifications. The template key names
// the message ("order-paid", "order-sent", ...); the adapter resolves it to a
// concrete channel and template.
type NotificationSender interface {
	Notify(ctx context.Context, o *order.Order, templateKey string) error
}

// Invoice is the result of issuing an invoice for an order.
type Invoice struct {
	Number   string
	IssuedAt time.Time
}

// InvoiceIssuer talks to the external invoicing system.
type InvoiceIssuer interface {
	// CreateInvoice issues an invoice for the order.
	CreateInvoice(ctx context.Context, o *order.Order) (Invoice, error)

	// IsInvoiced reports whether the order already has an invoice, so the
	// terminal-status effect can skip orders invoiced earlier in the flow.
	IsInvoiced(ctx context.Context, o *order.Order) (bool, error)
}

// TransitionListener observes completed status transitions. Listeners run
// after the built-in side effects; a failing listener is logged and never
// blocks the transition or the remaining listeners.
type TransitionListener interface {
	OnTransition(ctx context.Context, o *order.Order, from *status.Status, to *status.Status) error
}

// TransitionListenerFunc adapts a plain function to TransitionListener.
type TransitionListenerFunc func(ctx context.Context, o *order.Order, from *status.Status, to *status.Status) error

// OnTransition calls f.
func (f TransitionListenerFunc) OnTransition(ctx context.Context, o *order.Order, from *status.Status, to *status.Status) error {
	return f(ctx, o, from, to)
}
