package inmem

import (
	"context"
	"fmt"
	"sync"

	"shoporder/internal/core/ports"
)

// CarrierAdapter implements ports.CarrierAdapter in memory. It accepts every
// shipment and fabricates shipment numbers and tracking URLs, which is enough
// for local development and dispatcher tests.
type CarrierAdapter struct {
	mu       sync.Mutex
	codes    []string
	sequence int
}

// NewCarrierAdapter creates an adapter serving the given carrier codes.
func NewCarrierAdapter(codes ...string) *CarrierAdapter {
	return &CarrierAdapter{codes: codes}
}

// CompatibleCarriers returns the carrier codes this adapter serves.
func (a *CarrierAdapter) CompatibleCarriers() []string {
	return a.codes
}

// CreateShipmentBatch accepts the whole batch and returns one result per
// shipment, in order.
func (a *CarrierAdapter) CreateShipmentBatch(
	_ context.Context, carrierCode string, shipments []ports.Shipment,
) ([]ports.ShipmentResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	results := make([]ports.ShipmentResult, 0, len(shipments))
	for _, shipment := range shipments {
		a.sequence++
		number := fmt.Sprintf("%s-%06d", carrierCode, a.sequence)
		results = append(results, ports.ShipmentResult{
			OrderID:        shipment.OrderID,
			ShipmentNumber: number,
			TrackingURL:    fmt.Sprintf("https://tracking.example.com/%s", number),
			PieceCount:     1,
		})
	}

	return results, nil
}
