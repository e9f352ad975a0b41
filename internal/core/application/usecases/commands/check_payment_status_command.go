package commands

import (
	"errors"

	"shoporder/internal/pkg/guard"
)

var (
	ErrCheckPaymentStatusCommandIsNotConstructed = errors.New(
		"CheckPaymentStatusCommand must be created via NewCheckPaymentStatusCommand constructor",
	)
	ErrGatewayPaymentIDIsRequired = errors.New("gateway payment id is required")
)

// CheckPaymentStatusCommand represents the customer returning from the hosted
// gateway. It carries the two halves of the compound session key: the order
// hash from the URL path and the gateway payment identifier from the query.
// Both must match one recorded session or nothing happens.
type CheckPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderHash        string
	gatewayPaymentID string

	guard guard.ConstructorGuard
}

// NewCheckPaymentStatusCommand creates a command to verify a returned payment.
func NewCheckPaymentStatusCommand(orderHash, gatewayPaymentID string) (CheckPaymentStatusCommand, error) {
	cmd := CheckPaymentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderHash(orderHash),
		cmd.setGatewayPaymentID(gatewayPaymentID),
	); err != nil {
		return CheckPaymentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrCheckPaymentStatusCommandIsNotConstructed)
}

// OrderHash returns the public hash of the order being paid.
func (c CheckPaymentStatusCommand) OrderHash() string {
	return c.orderHash
}

// GatewayPaymentID returns the gateway-assigned payment identifier.
func (c CheckPaymentStatusCommand) GatewayPaymentID() string {
	return c.gatewayPaymentID
}

func (c *CheckPaymentStatusCommand) setOrderHash(orderHash string) error {
	if orderHash == "" {
		return ErrOrderHashIsRequired
	}

	c.orderHash = orderHash
	return nil
}

func (c *CheckPaymentStatusCommand) setGatewayPaymentID(id string) error {
	if id == "" {
		return ErrGatewayPaymentIDIsRequired
	}

	c.gatewayPaymentID = id
	return nil
}
