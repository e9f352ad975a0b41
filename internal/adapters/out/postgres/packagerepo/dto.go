// Package packagerepo provides data transfer objects and mapping functions
// for carrier shipment records. A package row exists only for shipments the
// carrier has accepted; its presence marks the order as dispatched.
package packagerepo

import (
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// PackageDTO represents one carrier shipment record.
type PackageDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	CarrierCode    string
	ShipmentNumber string

	TrackingURL  string
	LabelURL     string
	SwappedID    string
	PieceCount   int
	FinalCarrier string

	InsertedAt time.Time
}

// TableName specifies the database table name for shipment records.
func (PackageDTO) TableName() string {
	return "packages"
}

// fromDomain converts a package record to its database representation.
func fromDomain(p *order.Package) PackageDTO {
	return PackageDTO{
		ID:             p.ID().Bytes(),
		OrderID:        p.OrderID().Bytes(),
		CarrierCode:    p.CarrierCode(),
		ShipmentNumber: p.ShipmentNumber(),
		TrackingURL:    p.TrackingURL(),
		LabelURL:       p.LabelURL(),
		SwappedID:      p.SwappedID(),
		PieceCount:     p.PieceCount(),
		FinalCarrier:   p.FinalCarrier(),
		InsertedAt:     p.InsertedAt(),
	}
}

// toDomain converts a database row to a package record.
func toDomain(dto PackageDTO) (*order.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestorePackage(
		id,
		orderID,
		dto.CarrierCode,
		dto.ShipmentNumber,
		dto.InsertedAt,
		dto.TrackingURL,
		dto.LabelURL,
		dto.SwappedID,
		dto.PieceCount,
		dto.FinalCarrier,
	)
}
