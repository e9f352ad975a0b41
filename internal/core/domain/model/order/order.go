package order

import (
	"errors"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/status"
	"shoporder/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the commerce order lifecycle. It owns the
// order's items, delivery information, and the references external event
// sources correlate on (number for bank transfers, public hash for the hosted
// payment gateway).
//
// Invariants:
//   - the effective price (base + delivery - sale) is floored at zero
//   - updatedAt advances on any status, price, or delivery mutation
//   - all monetary fields share one currency
//   - the pinged flag flips at most once; it is never reset by a sweep
//
// Status is a reference to a status registry entity; the aggregate never
// changes status on its own, that is the transition engine's job.
type Order struct {
	id     kernel.UUID
	number string
	hash   string

	statusRef *status.Status
	paid      bool
	pinged    bool

	basePrice     kernel.Money
	sale          kernel.Money
	deliveryPrice kernel.Money

	delivery *Delivery
	items    []Item

	notice            string
	handoverReference string

	insertedAt time.Time
	updatedAt  time.Time

	isConstructed bool
}

// NewOrder creates a new Order in the given initial status.
//
// The number is the customer-facing order number and doubles as the
// correlation key ("variable symbol") bank transfers are matched on. The hash
// is an opaque public identifier safe to put in customer-facing URLs.
// Sale and delivery price start at zero in the base price's currency.
func NewOrder(
	id kernel.UUID,
	number string,
	hash string,
	basePrice kernel.Money,
	initial *status.Status,
	insertedAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if hash == "" {
		return nil, errs.NewValueIsRequiredError("hash")
	}
	if err := basePrice.Validate(); err != nil {
		return nil, err
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}

	zero, err := kernel.ZeroMoney(basePrice.Currency())
	if err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		number:        number,
		hash:          hash,
		statusRef:     initial,
		basePrice:     basePrice,
		sale:          zero,
		deliveryPrice: zero,
		insertedAt:    insertedAt,
		updatedAt:     insertedAt,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence.
func RestoreOrder(
	id kernel.UUID,
	number string,
	hash string,
	st *status.Status,
	paid bool,
	pinged bool,
	basePrice kernel.Money,
	sale kernel.Money,
	deliveryPrice kernel.Money,
	delivery *Delivery,
	items []Item,
	notice string,
	handoverReference string,
	insertedAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, number, hash, basePrice, st, insertedAt)
	if err != nil {
		return nil, err
	}

	if err := sale.Validate(); err != nil {
		return nil, err
	}
	if err := deliveryPrice.Validate(); err != nil {
		return nil, err
	}

	o.paid = paid
	o.pinged = pinged
	o.sale = sale
	o.deliveryPrice = deliveryPrice
	o.delivery = delivery
	o.items = items
	o.notice = notice
	o.handoverReference = handoverReference
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the order number, which is also the bank correlation key.
func (o *Order) Number() string {
	return o.number
}

// Hash returns the opaque public identifier of the order.
func (o *Order) Hash() string {
	return o.hash
}

// Status returns the current lifecycle status reference.
func (o *Order) Status() *status.Status {
	return o.statusRef
}

// IsPaid reports whether the order has been paid.
func (o *Order) IsPaid() bool {
	return o.paid
}

// Pinged reports whether the payment reminder has already been sent.
func (o *Order) Pinged() bool {
	return o.pinged
}

// BasePrice returns the price of the goods before sale and delivery.
func (o *Order) BasePrice() kernel.Money {
	return o.basePrice
}

// Sale returns the sale amount subtracted from the price.
func (o *Order) Sale() kernel.Money {
	return o.sale
}

// DeliveryPrice returns the delivery price.
func (o *Order) DeliveryPrice() kernel.Money {
	return o.deliveryPrice
}

// Currency returns the currency shared by all monetary fields of the order.
func (o *Order) Currency() string {
	return o.basePrice.Currency()
}

// EffectivePrice returns base + delivery - sale, floored at zero.
// This is the amount the customer is expected to pay and the amount bank
// transactions are matched against.
func (o *Order) EffectivePrice() kernel.Money {
	withDelivery, err := o.basePrice.Add(o.deliveryPrice)
	if err != nil {
		// All fields share one currency by construction.
		return o.basePrice
	}

	effective, err := withDelivery.SubFloorZero(o.sale)
	if err != nil {
		return withDelivery
	}
	return effective
}

// Delivery returns the delivery information, or nil when none was provided.
func (o *Order) Delivery() *Delivery {
	return o.delivery
}

// Items returns the order's item lines.
func (o *Order) Items() []Item {
	return o.items
}

// Notice returns the free-text notice attached to the order.
func (o *Order) Notice() string {
	return o.notice
}

// HandoverReference returns the carrier handover reference shared by the
// batch this order was dispatched in, or "" before dispatch.
func (o *Order) HandoverReference() string {
	return o.handoverReference
}

// InsertedAt returns the creation timestamp.
func (o *Order) InsertedAt() time.Time {
	return o.insertedAt
}

// UpdatedAt returns the timestamp of the last status/price/delivery mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// SetStatus sets the live status reference and advances updatedAt.
// Called by the transition engine only; it performs no guard logic itself.
func (o *Order) SetStatus(st *status.Status, now time.Time) error {
	if err := st.Validate(); err != nil {
		return err
	}
	o.statusRef = st
	o.touch(now)
	return nil
}

// MarkPaid flags the order as paid and advances updatedAt.
func (o *Order) MarkPaid(now time.Time) {
	o.paid = true
	o.touch(now)
}

// MarkPinged records that the payment reminder has been sent. The flag makes
// the reminder at-most-once across repeated reconciliation runs; it does not
// advance updatedAt because no price or status changed.
func (o *Order) MarkPinged() {
	o.pinged = true
}

// SetSale sets the sale amount and advances updatedAt.
func (o *Order) SetSale(sale kernel.Money, now time.Time) error {
	if sale.Currency() != o.Currency() {
		return errs.NewValueIsInvalidError("sale currency")
	}
	o.sale = sale
	o.touch(now)
	return nil
}

// SetDeliveryPrice sets the delivery price and advances updatedAt.
func (o *Order) SetDeliveryPrice(price kernel.Money, now time.Time) error {
	if price.Currency() != o.Currency() {
		return errs.NewValueIsInvalidError("delivery price currency")
	}
	o.deliveryPrice = price
	o.touch(now)
	return nil
}

// SetDelivery sets the delivery information and advances updatedAt.
func (o *Order) SetDelivery(d *Delivery, now time.Time) error {
	if d == nil {
		return errs.NewValueIsRequiredError("delivery")
	}
	o.delivery = d
	o.touch(now)
	return nil
}

// AddItem appends an item line to the order.
func (o *Order) AddItem(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.UnitPrice().Currency() != o.Currency() {
		return errs.NewValueIsInvalidError("item currency")
	}
	o.items = append(o.items, item)
	return nil
}

// SetNotice sets the free-text notice.
func (o *Order) SetNotice(notice string) {
	o.notice = notice
}

// SetHandoverReference stores the shared carrier handover reference.
func (o *Order) SetHandoverReference(ref string) {
	o.handoverReference = ref
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) touch(now time.Time) {
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}
