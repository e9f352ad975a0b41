package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/core/domain/model/status"
	"shoporder/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatusRepository struct{ mock.Mock }

func (m *MockStatusRepository) Add(ctx context.Context, st *status.Status) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *MockStatusRepository) Update(ctx context.Context, st *status.Status) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *MockStatusRepository) Get(ctx context.Context, id kernel.UUID) (*status.Status, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Status), args.Error(1)
}

func (m *MockStatusRepository) GetByCode(ctx context.Context, code string) (*status.Status, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Status), args.Error(1)
}

func (m *MockStatusRepository) GetAll(ctx context.Context) ([]*status.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*status.Status), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByHash(ctx context.Context, hash string) (*order.Order, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatusCode(ctx context.Context, code string) ([]*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatusCodeUpdatedBefore(
	ctx context.Context, code string, cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, code, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, entry *order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.HistoryEntry), args.Error(1)
}

type MockNotificationSender struct{ mock.Mock }

func (m *MockNotificationSender) Notify(ctx context.Context, o *order.Order, templateKey string) error {
	args := m.Called(ctx, o, templateKey)
	return args.Error(0)
}

type MockInvoiceIssuer struct{ mock.Mock }

func (m *MockInvoiceIssuer) CreateInvoice(ctx context.Context, o *order.Order) (ports.Invoice, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(ports.Invoice), args.Error(1)
}

func (m *MockInvoiceIssuer) IsInvoiced(ctx context.Context, o *order.Order) (bool, error) {
	args := m.Called(ctx, o)
	return args.Bool(0), args.Error(1)
}

type MockTransitionListener struct{ mock.Mock }

func (m *MockTransitionListener) OnTransition(
	ctx context.Context, o *order.Order, from *status.Status, to *status.Status,
) error {
	args := m.Called(ctx, o, from, to)
	return args.Error(0)
}

// testStores bundles the repository mocks behind the stores interface the
// engine expects from a unit of work.
type testStores struct {
	statuses *MockStatusRepository
	orders   *MockOrderRepository
	history  *MockHistoryRepository
}

func newTestStores() testStores {
	return testStores{
		statuses: new(MockStatusRepository),
		orders:   new(MockOrderRepository),
		history:  new(MockHistoryRepository),
	}
}

func (s testStores) StatusRepository() ports.StatusRepository   { return s.statuses }
func (s testStores) OrderRepository() ports.OrderRepository     { return s.orders }
func (s testStores) HistoryRepository() ports.HistoryRepository { return s.history }

func (s testStores) AssertExpectations(t *testing.T) {
	t.Helper()
	s.statuses.AssertExpectations(t)
	s.orders.AssertExpectations(t)
	s.history.AssertExpectations(t)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStatus(t *testing.T, code string, position int) *status.Status {
	t.Helper()
	st, err := status.NewStatus(kernel.NewUUID(), code, "", position)
	require.NoError(t, err)
	return st
}

func newOrder(t *testing.T, number string, initial *status.Status) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(decimal.RequireFromString("999.80"), "CZK")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, "hash-"+number, price, initial,
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}
