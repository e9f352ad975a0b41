package inmem

import (
	"context"
	"log/slog"
	"sync"

	"shoporder/internal/core/domain/model/order"
)

// SentNotification is one notification the Notifier accepted.
type SentNotification struct {
	OrderNumber string
	TemplateKey string
}

// Notifier implements ports.NotificationSender by logging every notification
// and keeping it for inspection.
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	sent   []SentNotification
}

// NewNotifier creates a logging notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger.With("component", "notifier")}
}

// Notify records the notification.
func (n *Notifier) Notify(_ context.Context, o *order.Order, templateKey string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, SentNotification{
		OrderNumber: o.Number(),
		TemplateKey: templateKey,
	})
	n.logger.Info("notification sent",
		"order", o.Number(),
		"template", templateKey)
	return nil
}

// Sent returns a copy of everything notified so far.
func (n *Notifier) Sent() []SentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]SentNotification, len(n.sent))
	copy(out, n.sent)
	return out
}
