package commands

import (
	"errors"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrStatusCodeIsRequired = errors.New("status code is required")
)

// ChangeOrderStatusCommand represents a request to move an order to another
// lifecycle status by code.
//
// Force is accepted for callers that still send it but has no effect: the
// transition engine applies the same rules either way. Moving to the current
// status is always a no-op, with or without force.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	statusCode string
	force      bool

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to change an order's status.
func NewChangeOrderStatusCommand(orderID kernel.UUID, statusCode string, force bool) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatusCode(statusCode),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	cmd.force = force
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to move.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StatusCode returns the code of the target status.
func (c ChangeOrderStatusCommand) StatusCode() string {
	return c.statusCode
}

// Force reports whether the caller requested a forced transition.
// The flag is carried for API compatibility and ignored by the handler.
func (c ChangeOrderStatusCommand) Force() bool {
	return c.force
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatusCode(statusCode string) error {
	if statusCode == "" {
		return ErrStatusCodeIsRequired
	}

	c.statusCode = statusCode
	return nil
}
