package order

import (
	"errors"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/pkg/errs"
)

// ErrPackageIsNotConstructed is returned when a Package was not created via
// NewPackage.
var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage")

// Package is one shipment result persisted after a successful carrier batch
// submission. The shipment identifiers (order, carrier, shipment number) are
// immutable, set at creation; the carrier-provided fields (tracking and label
// URLs, swapped id, piece count, final-leg carrier) arrive with or after the
// submission result and stay mutable.
//
// An order owning at least one Package counts as already dispatched and is
// dropped from any further carrier batch.
type Package struct {
	id             kernel.UUID
	orderID        kernel.UUID
	carrierCode    string
	shipmentNumber string
	insertedAt     time.Time

	trackingURL  string
	labelURL     string
	swappedID    string
	pieceCount   int
	finalCarrier string

	isConstructed bool
}

// NewPackage creates a shipment record with its immutable identifiers.
func NewPackage(
	id kernel.UUID,
	orderID kernel.UUID,
	carrierCode string,
	shipmentNumber string,
	insertedAt time.Time,
) (*Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if carrierCode == "" {
		return nil, errs.NewValueIsRequiredError("carrierCode")
	}
	if shipmentNumber == "" {
		return nil, errs.NewValueIsRequiredError("shipmentNumber")
	}

	return &Package{
		id:             id,
		orderID:        orderID,
		carrierCode:    carrierCode,
		shipmentNumber: shipmentNumber,
		insertedAt:     insertedAt,
		isConstructed:  true,
	}, nil
}

// RestorePackage reconstructs a Package from persistence.
func RestorePackage(
	id kernel.UUID,
	orderID kernel.UUID,
	carrierCode string,
	shipmentNumber string,
	insertedAt time.Time,
	trackingURL string,
	labelURL string,
	swappedID string,
	pieceCount int,
	finalCarrier string,
) (*Package, error) {
	p, err := NewPackage(id, orderID, carrierCode, shipmentNumber, insertedAt)
	if err != nil {
		return nil, err
	}
	p.trackingURL = trackingURL
	p.labelURL = labelURL
	p.swappedID = swappedID
	p.pieceCount = pieceCount
	p.finalCarrier = finalCarrier
	return p, nil
}

// Validate ensures the Package was properly constructed.
func (p *Package) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPackageIsNotConstructed
	}
	return nil
}

// ID returns the record identifier.
func (p *Package) ID() kernel.UUID {
	return p.id
}

// OrderID returns the dispatched order's identifier.
func (p *Package) OrderID() kernel.UUID {
	return p.orderID
}

// CarrierCode returns the carrier the shipment was submitted to.
func (p *Package) CarrierCode() string {
	return p.carrierCode
}

// ShipmentNumber returns the carrier-assigned shipment number.
func (p *Package) ShipmentNumber() string {
	return p.shipmentNumber
}

// InsertedAt returns the creation timestamp.
func (p *Package) InsertedAt() time.Time {
	return p.insertedAt
}

// TrackingURL returns the carrier tracking URL, if provided yet.
func (p *Package) TrackingURL() string {
	return p.trackingURL
}

// LabelURL returns the shipping label URL, if provided yet.
func (p *Package) LabelURL() string {
	return p.labelURL
}

// SwappedID returns the replacement identifier some carriers assign after
// handover, if any.
func (p *Package) SwappedID() string {
	return p.swappedID
}

// PieceCount returns the number of physical pieces in the shipment.
func (p *Package) PieceCount() int {
	return p.pieceCount
}

// FinalCarrier returns the final-leg carrier for multi-carrier routes, if any.
func (p *Package) FinalCarrier() string {
	return p.finalCarrier
}

// SetCarrierDetails stores the mutable carrier-provided fields.
func (p *Package) SetCarrierDetails(trackingURL, labelURL, swappedID string, pieceCount int, finalCarrier string) {
	p.trackingURL = trackingURL
	p.labelURL = labelURL
	p.swappedID = swappedID
	if pieceCount > 0 {
		p.pieceCount = pieceCount
	}
	p.finalCarrier = finalCarrier
}
