package commands

import (
	"errors"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/pkg/guard"
)

var (
	ErrCreatePackagesCommandIsNotConstructed = errors.New(
		"CreatePackagesCommand must be created via NewCreatePackagesCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
)

// CreatePackagesCommand represents a request to dispatch a set of orders to
// their carrier as one batch.
type CreatePackagesCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreatePackagesCommand creates a batch dispatch command.
func NewCreatePackagesCommand(orderIDs []kernel.UUID) (CreatePackagesCommand, error) {
	cmd := CreatePackagesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderIDs(orderIDs); err != nil {
		return CreatePackagesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePackagesCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackagesCommandIsNotConstructed)
}

// OrderIDs returns the identifiers of the orders to dispatch.
func (c CreatePackagesCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c *CreatePackagesCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.orderIDs = orderIDs
	return nil
}
