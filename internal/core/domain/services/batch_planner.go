package services

import (
	"errors"
	"fmt"

	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/pkg/errs"
)

var (
	// ErrEmptyBatch is returned when a carrier batch contains no orders.
	ErrEmptyBatch = errors.New("no orders to dispatch")

	// ErrMixedCarriers is returned when the orders of one batch are mapped to
	// more than one carrier. A batch call goes to exactly one carrier.
	ErrMixedCarriers = errors.New("orders map to different carriers")
)

// BatchPlanner enforces the carrier batch invariants before any network call
// is made: every order carries delivery information, all orders share one
// carrier, and each order has the address fields the carrier requires. The
// planner is pure; it never touches repositories or the carrier API.
type BatchPlanner struct{}

// NewBatchPlanner creates a BatchPlanner.
func NewBatchPlanner() BatchPlanner {
	return BatchPlanner{}
}

// SharedCarrier computes the single carrier code shared by all orders.
// It fails closed: a missing carrier on any order, or two different carriers
// in the set, reject the whole batch before anything is submitted.
func (BatchPlanner) SharedCarrier(orders []*order.Order) (string, error) {
	if len(orders) == 0 {
		return "", errs.NewValueIsInvalidErrorWithCause("orders", ErrEmptyBatch)
	}

	carrier := ""
	for _, o := range orders {
		if o.Delivery() == nil || o.Delivery().CarrierCode() == "" {
			return "", errs.NewValueIsInvalidErrorWithCause("orders",
				fmt.Errorf("order %s has no carrier", o.Number()))
		}

		code := o.Delivery().CarrierCode()
		if carrier == "" {
			carrier = code
			continue
		}
		if carrier != code {
			return "", errs.NewValueIsInvalidErrorWithCause("orders", ErrMixedCarriers)
		}
	}

	return carrier, nil
}

// ValidateDeliverable checks that one order carries everything a provider
// shipment needs. The caller wraps a failure with the order number and aborts
// the whole batch, so no partial submission can happen.
func (BatchPlanner) ValidateDeliverable(o *order.Order) error {
	d := o.Delivery()
	if d == nil {
		return errs.NewValueIsRequiredError("delivery")
	}
	if d.RecipientName() == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}
	if d.Street() == "" {
		return errs.NewValueIsRequiredError("street")
	}
	if d.City() == "" {
		return errs.NewValueIsRequiredError("city")
	}
	if d.Zip() == "" {
		return errs.NewValueIsRequiredError("zip")
	}
	return nil
}
