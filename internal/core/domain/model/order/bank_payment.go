package order

import (
	"errors"
	"fmt"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrBankPaymentIsNotConstructed is returned when a BankPayment was not
// created via NewBankPayment.
var ErrBankPaymentIsNotConstructed = errors.New("BankPayment must be created via NewBankPayment")

// ErrBankPaymentAlreadyLinked is returned when linking a bank payment that is
// already linked to a different order.
var ErrBankPaymentAlreadyLinked = errors.New("bank payment is already linked to another order")

// BankPayment is one transaction ingested from the external bank feed.
//
// The external transaction identifier is the idempotency key: re-running a
// reconciliation job over the same feed never creates a second record for the
// same transaction. Everything except the order link is immutable after
// creation; the link is set exactly once when the transaction is matched.
type BankPayment struct {
	id             kernel.UUID
	transactionID  string
	amount         decimal.Decimal
	currency       string
	variableSymbol string
	orderID        *kernel.UUID
	insertedAt     time.Time

	isConstructed bool
}

// NewBankPayment creates an unmatched bank payment record.
// The amount must be positive; the reconciler drops non-positive feed rows
// before they ever reach this constructor, and the constructor enforces it
// again so a record can never be built from a refund or a zero row.
func NewBankPayment(
	id kernel.UUID,
	transactionID string,
	amount decimal.Decimal,
	currency string,
	variableSymbol string,
	insertedAt time.Time,
) (*BankPayment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if transactionID == "" {
		return nil, errs.NewValueIsRequiredError("transactionID")
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is not greater than 0", amount))
	}
	if currency == "" {
		return nil, errs.NewValueIsRequiredError("currency")
	}

	return &BankPayment{
		id:             id,
		transactionID:  transactionID,
		amount:         amount,
		currency:       currency,
		variableSymbol: variableSymbol,
		insertedAt:     insertedAt,
		isConstructed:  true,
	}, nil
}

// RestoreBankPayment reconstructs a BankPayment from persistence.
func RestoreBankPayment(
	id kernel.UUID,
	transactionID string,
	amount decimal.Decimal,
	currency string,
	variableSymbol string,
	orderID *kernel.UUID,
	insertedAt time.Time,
) (*BankPayment, error) {
	p, err := NewBankPayment(id, transactionID, amount, currency, variableSymbol, insertedAt)
	if err != nil {
		return nil, err
	}
	p.orderID = orderID
	return p, nil
}

// Validate ensures the BankPayment was properly constructed.
func (p *BankPayment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrBankPaymentIsNotConstructed
	}
	return nil
}

// ID returns the record identifier.
func (p *BankPayment) ID() kernel.UUID {
	return p.id
}

// TransactionID returns the unique external transaction identifier.
func (p *BankPayment) TransactionID() string {
	return p.transactionID
}

// Amount returns the transferred amount.
func (p *BankPayment) Amount() decimal.Decimal {
	return p.amount
}

// Currency returns the currency of the transfer.
func (p *BankPayment) Currency() string {
	return p.currency
}

// VariableSymbol returns the free-text correlation key the customer filled in,
// matched against order numbers.
func (p *BankPayment) VariableSymbol() string {
	return p.variableSymbol
}

// OrderID returns the linked order identifier, or nil while unmatched.
func (p *BankPayment) OrderID() *kernel.UUID {
	return p.orderID
}

// InsertedAt returns the ingestion timestamp.
func (p *BankPayment) InsertedAt() time.Time {
	return p.insertedAt
}

// LinkOrder links the payment to an order. Linking is idempotent for the same
// order and rejected for a different one; the link never changes once set.
func (p *BankPayment) LinkOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if p.orderID != nil {
		if p.orderID.IsEqual(orderID) {
			return nil
		}
		return ErrBankPaymentAlreadyLinked
	}
	p.orderID = &orderID
	return nil
}
