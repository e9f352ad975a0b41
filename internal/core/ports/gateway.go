package ports

import (
	"context"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/services"
)

// PaymentState is the state a hosted-gateway payment can be in.
type PaymentState string

const (
	// PaymentStatePending means the customer has not finished the payment yet.
	PaymentStatePending PaymentState = "pending"

	// PaymentStatePaid means the gateway confirmed the payment.
	PaymentStatePaid PaymentState = "paid"

	// PaymentStateCancelled means the customer aborted or the session expired.
	PaymentStateCancelled PaymentState = "cancelled"
)

// PaymentSpec describes the payment session to create: the order references
// the gateway echoes back, the total, and the line items shown on the hosted
// payment page. Line amounts sum exactly to the total.
type PaymentSpec struct {
	OrderNumber string
	OrderHash   string
	Total       kernel.Money
	Lines       []services.PaymentLine
	ReturnURL   string
}

// CreatedPayment is the gateway's answer to a session creation.
type CreatedPayment struct {
	// ID is the gateway-assigned payment identifier, later presented on the
	// return URL and verified together with the order hash.
	ID string

	// RedirectURL is the hosted payment page the customer is sent to.
	RedirectURL string
}

// GatewayClient talks to the hosted payment gateway.
// Failures are reported as errs.ExternalServiceError.
type GatewayClient interface {
	// CreatePayment opens a payment session for the given spec.
	CreatePayment(ctx context.Context, spec PaymentSpec) (CreatedPayment, error)

	// Verify asks the gateway for the current state of a payment.
	Verify(ctx context.Context, gatewayID string) (PaymentState, error)
}
