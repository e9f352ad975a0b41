// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain model and read straight from the
// database into flat response structures.
package queries

import (
	"errors"

	"shoporder/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
		"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
	)
	ErrHashIsRequired = errors.New("hash is required")
)

// GetOrderSummaryQuery retrieves the customer-facing summary of one order by
// its public hash. This is what the payment page and the return page render.
type GetOrderSummaryQuery struct {
	hash string

	guard guard.ConstructorGuard
}

// NewGetOrderSummaryQuery creates a query for one order summary.
func NewGetOrderSummaryQuery(hash string) (GetOrderSummaryQuery, error) {
	if hash == "" {
		return GetOrderSummaryQuery{}, ErrHashIsRequired
	}
	return GetOrderSummaryQuery{hash: hash, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// Hash returns the public hash of the order.
func (q GetOrderSummaryQuery) Hash() string {
	return q.hash
}

// GetOrderSummaryQueryResponse is the flat order summary for customer-facing
// pages. Status is the public label, never the internal code.
type GetOrderSummaryQueryResponse struct {
	Number      string
	Total       decimal.Decimal
	Currency    string
	StatusLabel string
	StatusColor string
	Paid        bool
}
