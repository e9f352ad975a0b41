package inmem_test

import (
	"context"
	"errors"
	"testing"

	"shoporder/internal/adapters/out/inmem"
	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), "CZK")
	require.NoError(t, err)
	return m
}

func TestBankFeed_UnmatchedTransactions(t *testing.T) {
	feed := inmem.NewBankFeed()
	feed.Push(
		ports.BankTransaction{TransactionID: "TX-1", Amount: decimal.RequireFromString("999.00"), Currency: "CZK", VariableSymbol: "100024"},
		ports.BankTransaction{TransactionID: "TX-2", Amount: decimal.RequireFromString("500.00"), Currency: "CZK", VariableSymbol: "unknown"},
		ports.BankTransaction{TransactionID: "TX-3", Amount: decimal.RequireFromString("-100.00"), Currency: "CZK", VariableSymbol: "100025"},
	)

	transactions, err := feed.UnmatchedTransactions(context.Background(), []string{"100024", "100025"})
	require.NoError(t, err)

	// Rows are filtered by candidate number only; amount guards are the
	// reconciler's job.
	ids := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		ids = append(ids, tx.TransactionID)
	}
	require.Equal(t, []string{"TX-1", "TX-3"}, ids)
}

func TestBankFeed_Authorize(t *testing.T) {
	tolerance := decimal.RequireFromString("0.25")

	t.Run("should match amounts within tolerance and skip the rest", func(t *testing.T) {
		feed := inmem.NewBankFeed()
		feed.Push(
			ports.BankTransaction{TransactionID: "TX-1", Amount: decimal.RequireFromString("999.90"), Currency: "CZK", VariableSymbol: "100024"},
			ports.BankTransaction{TransactionID: "TX-2", Amount: decimal.RequireFromString("500.00"), Currency: "CZK", VariableSymbol: "100024"},
			ports.BankTransaction{TransactionID: "TX-3", Amount: decimal.RequireFromString("999.80"), Currency: "EUR", VariableSymbol: "100024"},
			ports.BankTransaction{TransactionID: "TX-4", Amount: decimal.RequireFromString("250.00"), Currency: "CZK", VariableSymbol: "unknown"},
			ports.BankTransaction{TransactionID: "TX-5", Amount: decimal.RequireFromString("-999.80"), Currency: "CZK", VariableSymbol: "100024"},
		)

		expected := map[string]kernel.Money{"100024": money(t, "999.80")}

		var matched []string
		err := feed.Authorize(context.Background(), expected, tolerance,
			func(_ context.Context, tx ports.BankTransaction, orderNumber string) error {
				require.Equal(t, "100024", orderNumber)
				matched = append(matched, tx.TransactionID)
				return nil
			})
		require.NoError(t, err)
		require.Equal(t, []string{"TX-1"}, matched)
	})

	t.Run("should keep going when a match callback fails", func(t *testing.T) {
		feed := inmem.NewBankFeed()
		feed.Push(
			ports.BankTransaction{TransactionID: "TX-1", Amount: decimal.RequireFromString("100.00"), Currency: "CZK", VariableSymbol: "100024"},
			ports.BankTransaction{TransactionID: "TX-2", Amount: decimal.RequireFromString("200.00"), Currency: "CZK", VariableSymbol: "100025"},
		)

		expected := map[string]kernel.Money{
			"100024": money(t, "100.00"),
			"100025": money(t, "200.00"),
		}

		boom := errors.New("db down")
		var matched []string
		err := feed.Authorize(context.Background(), expected, tolerance,
			func(_ context.Context, tx ports.BankTransaction, _ string) error {
				matched = append(matched, tx.TransactionID)
				if tx.TransactionID == "TX-1" {
					return boom
				}
				return nil
			})
		require.ErrorIs(t, err, boom)
		require.Equal(t, []string{"TX-1", "TX-2"}, matched)
	})
}
