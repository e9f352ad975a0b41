package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/core/ports"
)

// Invoicer implements ports.InvoiceIssuer in memory with sequential invoice
// numbers. Issuing twice for the same order returns the existing invoice.
type Invoicer struct {
	mu       sync.Mutex
	clock    func() time.Time
	sequence int
	issued   map[string]ports.Invoice
}

// NewInvoicer creates an invoicer stamping invoices with the given clock.
func NewInvoicer(clock func() time.Time) *Invoicer {
	if clock == nil {
		clock = time.Now
	}
	return &Invoicer{
		clock:  clock,
		issued: make(map[string]ports.Invoice),
	}
}

// CreateInvoice issues an invoice for the order, idempotently per order.
func (i *Invoicer) CreateInvoice(_ context.Context, o *order.Order) (ports.Invoice, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if invoice, ok := i.issued[o.Number()]; ok {
		return invoice, nil
	}

	i.sequence++
	invoice := ports.Invoice{
		Number:   fmt.Sprintf("INV-%d-%04d", i.clock().UTC().Year(), i.sequence),
		IssuedAt: i.clock().UTC(),
	}
	i.issued[o.Number()] = invoice
	return invoice, nil
}

// IsInvoiced reports whether the order already has an invoice.
func (i *Invoicer) IsInvoiced(_ context.Context, o *order.Order) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	_, ok := i.issued[o.Number()]
	return ok, nil
}
