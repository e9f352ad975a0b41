package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
	domainservices "shoporder/internal/core/domain/services"
	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"
)

// CreatePackagesCommandHandler dispatches a batch of orders to their carrier.
//
// The batch is all-or-nothing. Validation runs before anything leaves the
// process: every order must carry complete delivery information and all
// orders must map to the same carrier, otherwise the whole batch is rejected
// with nothing submitted. The carrier call itself is one batch request, and
// the resulting packages plus the shared handover reference are persisted in
// a single commit.
//
// Orders that already have a package are silently dropped from the batch, so
// re-dispatching a partially processed selection cannot create duplicate
// shipments.
type CreatePackagesCommandHandler struct {
	uowFactory DispatchUoWFactory
	carriers   ports.CarrierRegistry
	planner    domainservices.BatchPlanner
	clock      func() time.Time
	logger     *slog.Logger
}

// NewCreatePackagesCommandHandler creates a handler for carrier batch dispatch.
func NewCreatePackagesCommandHandler(
	uowFactory DispatchUoWFactory,
	carriers ports.CarrierRegistry,
	clock func() time.Time,
	logger *slog.Logger,
) CreatePackagesCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return CreatePackagesCommandHandler{
		uowFactory: uowFactory,
		carriers:   carriers,
		planner:    domainservices.NewBatchPlanner(),
		clock:      clock,
		logger:     logger.With("component", "carrier-dispatch"),
	}
}

// Handle processes the batch dispatch and returns the handover reference
// shared by all created packages, or "" when every order was already
// dispatched.
func (h *CreatePackagesCommandHandler) Handle(ctx context.Context, cmd CreatePackagesCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batch, err := h.collectBatch(ctx, uow, cmd.OrderIDs())
	if err != nil {
		return "", err
	}
	if len(batch) == 0 {
		h.logger.Info("nothing to dispatch, all orders already packaged")
		return "", nil
	}

	carrierCode, err := h.planner.SharedCarrier(batch)
	if err != nil {
		return "", err
	}

	shipments := make([]ports.Shipment, 0, len(batch))
	for _, o := range batch {
		if err := h.planner.ValidateDeliverable(o); err != nil {
			return "", fmt.Errorf("order %s: %w", o.Number(), err)
		}
		d := o.Delivery()
		shipments = append(shipments, ports.Shipment{
			OrderID:       o.ID(),
			OrderNumber:   o.Number(),
			RecipientName: d.RecipientName(),
			Street:        d.Street(),
			City:          d.City(),
			Zip:           d.Zip(),
			Notice:        o.Notice(),
		})
	}

	adapter, err := h.carriers.AdapterFor(carrierCode)
	if err != nil {
		return "", err
	}

	results, err := adapter.CreateShipmentBatch(ctx, carrierCode, shipments)
	if err != nil {
		return "", err
	}
	if len(results) != len(shipments) {
		return "", errs.NewValueIsInvalidErrorWithCause("results",
			fmt.Errorf("carrier accepted %d of %d shipments", len(results), len(shipments)))
	}

	handoverRef := kernel.NewUUID().String()
	now := h.clock().UTC()

	byID := make(map[kernel.UUID]*order.Order, len(batch))
	for _, o := range batch {
		byID[o.ID()] = o
	}

	for _, result := range results {
		o, ok := byID[result.OrderID]
		if !ok {
			return "", errs.NewValueIsInvalidErrorWithCause("results",
				fmt.Errorf("carrier returned unknown order id %s", result.OrderID))
		}

		pkg, err := order.NewPackage(kernel.NewUUID(), o.ID(), carrierCode, result.ShipmentNumber, now)
		if err != nil {
			return "", err
		}
		pkg.SetCarrierDetails(result.TrackingURL, result.LabelURL, result.SwappedID,
			result.PieceCount, result.FinalCarrier)

		if err := uow.PackageRepository().Add(ctx, pkg); err != nil {
			return "", err
		}

		o.SetHandoverReference(handoverRef)
		if err := uow.OrderRepository().Update(ctx, o); err != nil {
			return "", err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return "", err
	}

	h.logger.Info("carrier batch dispatched",
		"carrier", carrierCode,
		"orders", len(batch),
		"handoverRef", handoverRef)
	return handoverRef, nil
}

// collectBatch loads the orders and drops the already-packaged ones.
func (h *CreatePackagesCommandHandler) collectBatch(
	ctx context.Context,
	uow DispatchUoW,
	orderIDs []kernel.UUID,
) ([]*order.Order, error) {
	batch := make([]*order.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		o, err := uow.OrderRepository().Get(ctx, id)
		if err != nil {
			return nil, err
		}

		packaged, err := uow.PackageRepository().ExistsForOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		if packaged {
			h.logger.Info("order already packaged, skipping", "order", o.Number())
			continue
		}

		batch = append(batch, o)
	}
	return batch, nil
}
