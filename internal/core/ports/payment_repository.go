package ports

import (
	"context"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
)

// BankPaymentRepository persists recorded bank transactions. The transaction
// identifier assigned by the bank is the idempotency key: a transaction that
// already exists is never recorded twice.
type BankPaymentRepository interface {
	// Add persists a new bank payment record.
	Add(ctx context.Context, payment *order.BankPayment) error

	// Update persists changes to an existing bank payment record.
	Update(ctx context.Context, payment *order.BankPayment) error

	// ExistsByTransactionID reports whether a payment with the bank-assigned
	// transaction identifier has already been recorded.
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)

	// GetByTransactionID retrieves a bank payment by the bank-assigned
	// transaction identifier.
	GetByTransactionID(ctx context.Context, transactionID string) (*order.BankPayment, error)
}

// OnlinePaymentRepository persists hosted-gateway payment sessions. The
// compound key (gateway payment identifier, order hash) is unique: return-URL
// verification looks sessions up by exactly that pair, so a payment
// identifier from another order's session can never be replayed.
type OnlinePaymentRepository interface {
	// Add persists a new gateway payment session.
	Add(ctx context.Context, payment *order.OnlinePayment) error

	// Update persists changes to an existing gateway payment session.
	Update(ctx context.Context, payment *order.OnlinePayment) error

	// GetByGatewayAndHash retrieves the session created for the given gateway
	// payment identifier and order hash. Returns errs.ObjectNotFoundError when
	// the pair does not match any session.
	GetByGatewayAndHash(ctx context.Context, gatewayID string, orderHash string) (*order.OnlinePayment, error)

	// GetByOrder retrieves all sessions created for one order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.OnlinePayment, error)
}

// PackageRepository persists carrier shipment records. A package row is
// created only after the carrier accepted the shipment; its presence is what
// makes repeated dispatches of the same order no-ops.
type PackageRepository interface {
	// Add persists a new package record.
	Add(ctx context.Context, pkg *order.Package) error

	// Update persists changes to an existing package record.
	Update(ctx context.Context, pkg *order.Package) error

	// ExistsForOrder reports whether the order already has a package.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// GetByOrder retrieves all packages of one order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Package, error)
}
