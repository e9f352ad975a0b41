package order

import "shoporder/internal/pkg/errs"

// Delivery holds the shipping information of an order: the carrier the order
// should be dispatched with and the recipient address fields the carrier
// requires. An order without Delivery can never enter a carrier batch.
type Delivery struct {
	carrierCode   string
	recipientName string
	street        string
	city          string
	zip           string
}

// NewDelivery creates delivery information. The carrier code is required at
// construction; the address fields are validated later by the batch planner
// because some carriers are fine with partial addresses at order time.
func NewDelivery(carrierCode, recipientName, street, city, zip string) (*Delivery, error) {
	if carrierCode == "" {
		return nil, errs.NewValueIsRequiredError("carrierCode")
	}

	return &Delivery{
		carrierCode:   carrierCode,
		recipientName: recipientName,
		street:        street,
		city:          city,
		zip:           zip,
	}, nil
}

// CarrierCode returns the code of the carrier the order ships with.
func (d *Delivery) CarrierCode() string {
	return d.carrierCode
}

// RecipientName returns the recipient name.
func (d *Delivery) RecipientName() string {
	return d.recipientName
}

// Street returns the street line of the address.
func (d *Delivery) Street() string {
	return d.street
}

// City returns the city of the address.
func (d *Delivery) City() string {
	return d.city
}

// Zip returns the postal code of the address.
func (d *Delivery) Zip() string {
	return d.zip
}
