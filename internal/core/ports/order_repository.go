package ports

import (
	"context"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Besides identifier lookup it supports the two correlation keys external
// event sources use (number for bank transfers, hash for the payment gateway)
// and the status-scoped scans the reconciliation sweeps run on.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its customer-facing number.
	// The number doubles as the variable symbol bank transfers carry.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetByHash retrieves an order by its opaque public hash.
	GetByHash(ctx context.Context, hash string) (*order.Order, error)

	// GetAllInStatusCode retrieves all orders currently in the given status.
	GetAllInStatusCode(ctx context.Context, code string) ([]*order.Order, error)

	// GetAllInStatusCodeUpdatedBefore retrieves all orders in the given status
	// whose last mutation happened before the cutoff. Used by the
	// auto-completion sweep.
	GetAllInStatusCodeUpdatedBefore(ctx context.Context, code string, cutoff time.Time) ([]*order.Order, error)
}

// HistoryRepository persists the append-only status history of orders.
// History rows are immutable; there is no update.
type HistoryRepository interface {
	// Add appends one history entry.
	Add(ctx context.Context, entry *order.HistoryEntry) error

	// GetByOrder retrieves the history of one order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error)
}
