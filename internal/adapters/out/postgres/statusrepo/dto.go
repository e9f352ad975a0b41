// Package statusrepo provides data transfer objects and mapping functions for
// the status registry. Statuses are data rows, not an enum: the table is
// editable at runtime and the transition engine inserts missing codes on
// demand.
package statusrepo

import (
	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// StatusDTO represents the database structure of one status registry row.
// The code is the stable reference key; orders point at statuses by id.
type StatusDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code          string    `gorm:"uniqueIndex"`
	Label         string
	InternalLabel string
	PublicLabel   string
	Position      int `gorm:"index"`
	Color         string
	RedirectTo    string
}

// TableName specifies the database table name for status registry rows.
func (StatusDTO) TableName() string {
	return "statuses"
}

// FromDomain converts a status entity to its database representation.
func FromDomain(st *status.Status) StatusDTO {
	return StatusDTO{
		ID:            st.ID().Bytes(),
		Code:          st.Code(),
		Label:         st.Label(),
		InternalLabel: st.InternalLabel(),
		PublicLabel:   st.PublicLabel(),
		Position:      st.Position(),
		Color:         st.Color(),
		RedirectTo:    st.RedirectTo(),
	}
}

// ToDomain converts a database row to a status entity.
func ToDomain(dto StatusDTO) (*status.Status, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return status.RestoreStatus(
		id,
		dto.Code,
		dto.Label,
		dto.InternalLabel,
		dto.PublicLabel,
		dto.Position,
		dto.Color,
		dto.RedirectTo,
	)
}
