// Package inmem provides in-memory implementations of the outbound ports:
// bank feed, payment gateway, notification sender, invoice issuer and a
// carrier adapter. They back local development and tests; production wiring
// replaces them adapter by adapter.
package inmem

import (
	"context"
	"errors"
	"sync"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/ports"

	"github.com/shopspring/decimal"
)

// BankFeed implements ports.BankAuthorizator over a transaction list held in
// memory. Feed rows are appended via Push, typically from a test or a dev
// seeding routine.
type BankFeed struct {
	mu           sync.Mutex
	transactions []ports.BankTransaction
}

// NewBankFeed creates an empty bank feed.
func NewBankFeed() *BankFeed {
	return &BankFeed{}
}

// Push appends transactions to the feed.
func (f *BankFeed) Push(txs ...ports.BankTransaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transactions = append(f.transactions, txs...)
}

// UnmatchedTransactions returns the feed rows whose variable symbol names one
// of the candidate order numbers. Rows are returned as-is, the caller applies
// its own dedup and amount guards.
func (f *BankFeed) UnmatchedTransactions(
	_ context.Context,
	candidateNumbers []string,
) ([]ports.BankTransaction, error) {
	candidates := make(map[string]bool, len(candidateNumbers))
	for _, number := range candidateNumbers {
		candidates[number] = true
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []ports.BankTransaction
	for _, tx := range f.transactions {
		if candidates[tx.VariableSymbol] {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}

// Authorize walks the feed and reports every transaction whose variable
// symbol names an expected order and whose amount falls within the tolerance
// of the expected total. Non-positive rows (refunds, fees) are skipped.
// A failing callback does not stop the remaining rows; the errors are joined.
func (f *BankFeed) Authorize(
	ctx context.Context,
	expected map[string]kernel.Money,
	tolerance decimal.Decimal,
	onMatch ports.BankMatchFunc,
) error {
	f.mu.Lock()
	snapshot := make([]ports.BankTransaction, len(f.transactions))
	copy(snapshot, f.transactions)
	f.mu.Unlock()

	var matchErrs []error
	for _, tx := range snapshot {
		if !tx.Amount.IsPositive() {
			continue
		}

		expectedAmount, ok := expected[tx.VariableSymbol]
		if !ok {
			continue
		}
		if tx.Currency != expectedAmount.Currency() {
			continue
		}
		if !expectedAmount.WithinTolerance(tx.Amount, tolerance) {
			continue
		}

		if err := onMatch(ctx, tx, tx.VariableSymbol); err != nil {
			matchErrs = append(matchErrs, err)
		}
	}

	return errors.Join(matchErrs...)
}
