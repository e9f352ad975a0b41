package order

import (
	"errors"
	"fmt"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item was not created via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem")

// Item is a single item line of an order: a label, a positive quantity, and
// a unit price in the order's currency.
type Item struct {
	id        kernel.UUID
	label     string
	quantity  int
	unitPrice kernel.Money

	isConstructed bool
}

// NewItem creates an order item line.
func NewItem(id kernel.UUID, label string, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := id.Validate(); err != nil {
		return Item{}, err
	}
	if label == "" {
		return Item{}, errs.NewValueIsRequiredError("label")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := unitPrice.Validate(); err != nil {
		return Item{}, err
	}

	return Item{
		id:            id,
		label:         label,
		quantity:      quantity,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was properly constructed.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// Label returns the item label.
func (i Item) Label() string {
	return i.label
}

// Quantity returns the item quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of a single unit.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// LineTotal returns unit price multiplied by quantity.
func (i Item) LineTotal() kernel.Money {
	amount := i.unitPrice.Amount().Mul(decimal.NewFromInt(int64(i.quantity)))
	total, err := kernel.NewMoney(amount, i.unitPrice.Currency())
	if err != nil {
		return i.unitPrice
	}
	return total
}
