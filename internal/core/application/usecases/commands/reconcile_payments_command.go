package commands

import (
	"errors"

	"shoporder/internal/pkg/guard"
)

var ErrReconcilePaymentsCommandIsNotConstructed = errors.New(
	"ReconcilePaymentsCommand must be created via NewReconcilePaymentsCommand constructor",
)

// ReconcilePaymentsCommand triggers one payment reconciliation run: bank feed
// matching, stale-order cancellation, payment reminders, and auto-completion
// of delivered orders. The command carries no parameters; the run always
// covers everything outstanding.
type ReconcilePaymentsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcilePaymentsCommand creates a reconciliation command.
func NewReconcilePaymentsCommand() ReconcilePaymentsCommand {
	return ReconcilePaymentsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ReconcilePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentsCommandIsNotConstructed)
}
