package inmem

import (
	"context"
	"fmt"
	"sync"

	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"
)

// Gateway implements ports.GatewayClient in memory. Created payments start
// pending; tests and the dev console settle them via SettlePayment or
// CancelPayment to simulate the customer finishing on the hosted page.
type Gateway struct {
	mu       sync.Mutex
	baseURL  string
	sequence int
	states   map[string]ports.PaymentState
}

// NewGateway creates a gateway whose redirect URLs point at the given base.
func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		states:  make(map[string]ports.PaymentState),
	}
}

// CreatePayment registers a pending payment session and returns its
// identifier together with the hosted payment page URL.
func (g *Gateway) CreatePayment(_ context.Context, spec ports.PaymentSpec) (ports.CreatedPayment, error) {
	if spec.OrderNumber == "" {
		return ports.CreatedPayment{}, errs.NewValueIsRequiredError("orderNumber")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sequence++
	id := fmt.Sprintf("PAY-%06d", g.sequence)
	g.states[id] = ports.PaymentStatePending

	return ports.CreatedPayment{
		ID:          id,
		RedirectURL: fmt.Sprintf("%s/pay/%s", g.baseURL, id),
	}, nil
}

// Verify reports the current state of a payment session.
func (g *Gateway) Verify(_ context.Context, gatewayID string) (ports.PaymentState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	state, ok := g.states[gatewayID]
	if !ok {
		return "", errs.NewObjectNotFoundError("payment", gatewayID)
	}
	return state, nil
}

// SettlePayment marks a session as paid.
func (g *Gateway) SettlePayment(gatewayID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.states[gatewayID] = ports.PaymentStatePaid
}

// CancelPayment marks a session as cancelled.
func (g *Gateway) CancelPayment(gatewayID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.states[gatewayID] = ports.PaymentStateCancelled
}
