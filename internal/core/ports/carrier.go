package ports

import (
	"context"

	"shoporder/internal/core/domain/model/kernel"
)

// Shipment is one shipment of a carrier batch, built from a validated order.
type Shipment struct {
	OrderID       kernel.UUID
	OrderNumber   string
	RecipientName string
	Street        string
	City          string
	Zip           string
	Notice        string
}

// ShipmentResult is the carrier's record for one accepted shipment.
type ShipmentResult struct {
	OrderID        kernel.UUID
	ShipmentNumber string
	TrackingURL    string
	LabelURL       string
	SwappedID      string
	PieceCount     int
	FinalCarrier   string
}

// CarrierAdapter submits shipment batches to one carrier API (an adapter may
// serve several carrier codes of the same provider).
//
// CreateShipmentBatch is all-or-nothing from the caller's point of view: it
// either returns a result for every shipment or an error, never a partial
// acceptance. Failures are reported as errs.ExternalServiceError.
type CarrierAdapter interface {
	// CompatibleCarriers returns the carrier codes this adapter serves.
	CompatibleCarriers() []string

	// CreateShipmentBatch submits the whole batch in one call.
	CreateShipmentBatch(ctx context.Context, carrierCode string, shipments []Shipment) ([]ShipmentResult, error)
}

// CarrierRegistry resolves a carrier code to the adapter serving it.
type CarrierRegistry interface {
	// AdapterFor returns the adapter for the code, or
	// errs.ObjectNotFoundError when no adapter serves it.
	AdapterFor(carrierCode string) (CarrierAdapter, error)
}
