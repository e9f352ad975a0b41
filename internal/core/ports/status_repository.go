package ports

import (
	"context"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/status"
)

// StatusRepository defines the persistence contract for the status registry.
// Statuses are data, not an enum: the transition engine creates missing rows
// on demand, so the repository must support lookups by code as well as writes.
type StatusRepository interface {
	// Add persists a new status row.
	Add(ctx context.Context, aggregate *status.Status) error

	// Update persists changes to an existing status row.
	Update(ctx context.Context, aggregate *status.Status) error

	// Get retrieves a status by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*status.Status, error)

	// GetByCode retrieves a status by its machine code.
	// Returns errs.ObjectNotFoundError when no row carries the code.
	GetByCode(ctx context.Context, code string) (*status.Status, error)

	// GetAll retrieves all status rows ordered by position.
	GetAll(ctx context.Context) ([]*status.Status, error)
}
