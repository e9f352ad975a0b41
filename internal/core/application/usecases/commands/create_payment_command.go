package commands

import (
	"errors"

	"shoporder/internal/pkg/guard"
)

var (
	ErrCreatePaymentCommandIsNotConstructed = errors.New(
		"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
	)
	ErrOrderHashIsRequired = errors.New("order hash is required")
	ErrReturnURLIsRequired = errors.New("return URL is required")
)

// CreatePaymentCommand represents a customer's request to pay an order
// through the hosted payment gateway. The order is addressed by its public
// hash, never by its internal identifier.
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderHash string
	returnURL string

	guard guard.ConstructorGuard
}

// NewCreatePaymentCommand creates a command to open a gateway payment session.
// The return URL is where the gateway sends the customer back after the
// payment attempt; the gateway payment identifier is appended to it.
func NewCreatePaymentCommand(orderHash, returnURL string) (CreatePaymentCommand, error) {
	cmd := CreatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderHash(orderHash),
		cmd.setReturnURL(returnURL),
	); err != nil {
		return CreatePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

// OrderHash returns the public hash of the order to pay.
func (c CreatePaymentCommand) OrderHash() string {
	return c.orderHash
}

// ReturnURL returns the URL the gateway redirects the customer back to.
func (c CreatePaymentCommand) ReturnURL() string {
	return c.returnURL
}

func (c *CreatePaymentCommand) setOrderHash(orderHash string) error {
	if orderHash == "" {
		return ErrOrderHashIsRequired
	}

	c.orderHash = orderHash
	return nil
}

func (c *CreatePaymentCommand) setReturnURL(returnURL string) error {
	if returnURL == "" {
		return ErrReturnURLIsRequired
	}

	c.returnURL = returnURL
	return nil
}
