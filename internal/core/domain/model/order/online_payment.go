package order

import (
	"errors"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/pkg/errs"
)

// ErrOnlinePaymentIsNotConstructed is returned when an OnlinePayment was not
// created via NewOnlinePayment.
var ErrOnlinePaymentIsNotConstructed = errors.New("OnlinePayment must be created via NewOnlinePayment")

// OnlinePayment is one hosted-gateway payment attempt for an order.
//
// The pair (order hash, gateway payment id) is the compound idempotency and
// authorization key: a status callback must present both, so one customer
// cannot probe another customer's payment by guessing gateway identifiers.
// The price is a snapshot of the order total at session creation; the status
// and last-checked timestamp change as the gateway is polled.
type OnlinePayment struct {
	id            kernel.UUID
	gatewayID     string
	orderID       kernel.UUID
	orderHash     string
	price         kernel.Money
	status        string
	lastCheckedAt *time.Time
	insertedAt    time.Time

	isConstructed bool
}

// NewOnlinePayment creates a payment attempt record for a created gateway session.
func NewOnlinePayment(
	id kernel.UUID,
	gatewayID string,
	orderID kernel.UUID,
	orderHash string,
	price kernel.Money,
	initialStatus string,
	insertedAt time.Time,
) (*OnlinePayment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if gatewayID == "" {
		return nil, errs.NewValueIsRequiredError("gatewayID")
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if orderHash == "" {
		return nil, errs.NewValueIsRequiredError("orderHash")
	}
	if err := price.Validate(); err != nil {
		return nil, err
	}

	return &OnlinePayment{
		id:            id,
		gatewayID:     gatewayID,
		orderID:       orderID,
		orderHash:     orderHash,
		price:         price,
		status:        initialStatus,
		insertedAt:    insertedAt,
		isConstructed: true,
	}, nil
}

// RestoreOnlinePayment reconstructs an OnlinePayment from persistence.
func RestoreOnlinePayment(
	id kernel.UUID,
	gatewayID string,
	orderID kernel.UUID,
	orderHash string,
	price kernel.Money,
	status string,
	lastCheckedAt *time.Time,
	insertedAt time.Time,
) (*OnlinePayment, error) {
	p, err := NewOnlinePayment(id, gatewayID, orderID, orderHash, price, status, insertedAt)
	if err != nil {
		return nil, err
	}
	p.lastCheckedAt = lastCheckedAt
	return p, nil
}

// Validate ensures the OnlinePayment was properly constructed.
func (p *OnlinePayment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrOnlinePaymentIsNotConstructed
	}
	return nil
}

// ID returns the record identifier.
func (p *OnlinePayment) ID() kernel.UUID {
	return p.id
}

// GatewayID returns the identifier the gateway assigned to the session.
func (p *OnlinePayment) GatewayID() string {
	return p.gatewayID
}

// OrderID returns the identifier of the order being paid.
func (p *OnlinePayment) OrderID() kernel.UUID {
	return p.orderID
}

// OrderHash returns the public hash of the order being paid.
func (p *OnlinePayment) OrderHash() string {
	return p.orderHash
}

// Price returns the order total snapshot taken at session creation.
func (p *OnlinePayment) Price() kernel.Money {
	return p.price
}

// Status returns the last gateway status seen for this payment.
func (p *OnlinePayment) Status() string {
	return p.status
}

// LastCheckedAt returns when the gateway was last polled, or nil if never.
func (p *OnlinePayment) LastCheckedAt() *time.Time {
	return p.lastCheckedAt
}

// InsertedAt returns the session creation timestamp.
func (p *OnlinePayment) InsertedAt() time.Time {
	return p.insertedAt
}

// RecordStatus stores the status reported by the gateway and stamps the
// last-checked time. Returns true when the status differs from the previous
// value; the gateway reconciler only drives a "payment failed" transition on
// an actual change, so an unchanged poll stays retryable.
func (p *OnlinePayment) RecordStatus(gatewayStatus string, now time.Time) bool {
	changed := p.status != gatewayStatus
	p.status = gatewayStatus
	p.lastCheckedAt = &now
	return changed
}
