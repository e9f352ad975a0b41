package ports

import (
	"context"

	"shoporder/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// BankTransaction is one incoming transfer row from the bank feed.
type BankTransaction struct {
	// TransactionID is the bank-assigned unique identifier of the transfer.
	TransactionID string

	// Amount is the transferred amount. The feed adapter drops outgoing and
	// zero rows, so only positive amounts reach the reconciler.
	Amount decimal.Decimal

	// Currency is the currency of the transfer.
	Currency string

	// VariableSymbol is the free-text correlation field the customer filled
	// in, expected to carry an order number.
	VariableSymbol string
}

// BankMatchFunc is called once per matched transaction. A failing callback
// does not stop the remaining matches: the reconciler commits each match on
// its own, so implementations of BankAuthorizator keep going and return the
// collected errors joined, and only the failed matches are retried on the
// next run.
type BankMatchFunc func(ctx context.Context, tx BankTransaction, orderNumber string) error

// BankAuthorizator is the bank feed the payment reconciler works against.
type BankAuthorizator interface {
	// UnmatchedTransactions fetches the feed's incoming transactions whose
	// variable symbol names one of the candidate order numbers. The reconciler
	// uses it to ingest transfers that arrived for an outstanding order but do
	// not authorize it, a wrong amount for example, so they stay visible as
	// unlinked records instead of vanishing in the feed.
	//
	// Feed failures are reported as errs.ExternalServiceError.
	UnmatchedTransactions(ctx context.Context, candidateNumbers []string) ([]BankTransaction, error)

	// Authorize fetches the feed's unmatched incoming transactions, matches
	// them against the expected amounts keyed by order number within the
	// given tolerance, and invokes onMatch for every match. A transaction
	// whose variable symbol matches no key, or whose amount falls outside the
	// tolerance, is skipped and stays in the feed for the next run.
	//
	// Feed failures are reported as errs.ExternalServiceError.
	Authorize(ctx context.Context, expected map[string]kernel.Money, tolerance decimal.Decimal, onMatch BankMatchFunc) error
}
