package kernel

import (
	"fmt"

	"shoporder/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a non-negative monetary amount in a
// single currency. All order prices, payment amounts, and the bank-feed
// tolerance matching work on Money or its underlying decimal.Decimal, never
// on floats.
//
// The zero value of Money is invalid (empty currency) and must be constructed
// via NewMoney or ZeroMoney.
//
// Money is immutable; arithmetic methods return new values.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money value.
// The amount must not be negative and the currency code must not be empty.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if currency == "" {
		return Money{}, errs.NewValueIsRequiredError("currency")
	}
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}

	return Money{amount: amount, currency: currency}, nil
}

// ZeroMoney creates a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns the sum of two Money values.
// Both values must share the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// SubFloorZero subtracts other from m and floors the result at zero.
// This is the rule for applying a sale to an order price: the effective
// price never goes negative.
func (m Money) SubFloorZero(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}

	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		result = decimal.Zero
	}
	return Money{amount: result, currency: m.currency}, nil
}

// WithinTolerance reports whether the absolute difference between m and the
// given amount is at most tolerance. Used for fuzzy matching of bank
// transactions against expected order totals.
func (m Money) WithinTolerance(amount decimal.Decimal, tolerance decimal.Decimal) bool {
	return m.amount.Sub(amount).Abs().LessThanOrEqual(tolerance)
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns the amount followed by the currency code, e.g. "500 CZK".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount, m.currency)
}

// Validate checks that the Money value was properly constructed.
func (m Money) Validate() error {
	if m.currency == "" {
		return errs.NewValueIsRequiredError("Money must be created via NewMoney or ZeroMoney")
	}
	return nil
}

func (m Money) checkCurrency(other Money) error {
	if m.currency != other.currency {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%s does not match %s", other.currency, m.currency))
	}
	return nil
}
