package order

import (
	"errors"
	"time"

	"shoporder/internal/core/domain/model/kernel"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created via NewHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry")

// HistoryEntry is one append-only row of the order status history. When a
// transition hits a redirecting status, two entries are appended: one for the
// requested status and one for the redirect target the order actually lands
// on. History is never rewritten.
type HistoryEntry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	statusID   kernel.UUID
	insertedAt time.Time

	isConstructed bool
}

// NewHistoryEntry creates a history row for a recorded status.
func NewHistoryEntry(id, orderID, statusID kernel.UUID, insertedAt time.Time) (*HistoryEntry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := statusID.Validate(); err != nil {
		return nil, err
	}

	return &HistoryEntry{
		id:            id,
		orderID:       orderID,
		statusID:      statusID,
		insertedAt:    insertedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the HistoryEntry was properly constructed.
func (h *HistoryEntry) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (h *HistoryEntry) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the entry belongs to.
func (h *HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// StatusID returns the recorded status identifier.
func (h *HistoryEntry) StatusID() kernel.UUID {
	return h.statusID
}

// InsertedAt returns the time the entry was recorded.
func (h *HistoryEntry) InsertedAt() time.Time {
	return h.insertedAt
}
