package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"shoporder/internal/core/application/services"
	"shoporder/internal/core/application/usecases/commands"
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

type MockBankPaymentRepository struct{ mock.Mock }

func (m *MockBankPaymentRepository) Add(ctx context.Context, p *order.BankPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBankPaymentRepository) Update(ctx context.Context, p *order.BankPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBankPaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBankPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*order.BankPayment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.BankPayment), args.Error(1)
}

type MockOnlinePaymentRepository struct{ mock.Mock }

func (m *MockOnlinePaymentRepository) Add(ctx context.Context, p *order.OnlinePayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockOnlinePaymentRepository) Update(ctx context.Context, p *order.OnlinePayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockOnlinePaymentRepository) GetByGatewayAndHash(
	ctx context.Context, gatewayID string, orderHash string,
) (*order.OnlinePayment, error) {
	args := m.Called(ctx, gatewayID, orderHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OnlinePayment), args.Error(1)
}

func (m *MockOnlinePaymentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.OnlinePayment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.OnlinePayment), args.Error(1)
}

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, p *order.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, p *order.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPackageRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Package, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Package), args.Error(1)
}

// MockUoW implements every narrowed unit of work the command handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) StatusRepository() ports.StatusRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

func (m *MockUoW) BankPaymentRepository() ports.BankPaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.BankPaymentRepository)
}

func (m *MockUoW) OnlinePaymentRepository() ports.OnlinePaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.OnlinePaymentRepository)
}

func (m *MockUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.TransitionUoW {
	args := m.Called()
	return args.Get(0).(commands.TransitionUoW)
}

type MockReconcileUoWFactory struct{ mock.Mock }

func (m *MockReconcileUoWFactory) Create() commands.ReconcileUoW {
	args := m.Called()
	return args.Get(0).(commands.ReconcileUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockNotificationSender struct{ mock.Mock }

func (m *MockNotificationSender) Notify(ctx context.Context, o *order.Order, templateKey string) error {
	args := m.Called(ctx, o, templateKey)
	return args.Error(0)
}

type MockGatewayClient struct{ mock.Mock }

func (m *MockGatewayClient) CreatePayment(ctx context.Context, spec ports.PaymentSpec) (ports.CreatedPayment, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).(ports.CreatedPayment), args.Error(1)
}

func (m *MockGatewayClient) Verify(ctx context.Context, gatewayID string) (ports.PaymentState, error) {
	args := m.Called(ctx, gatewayID)
	return args.Get(0).(ports.PaymentState), args.Error(1)
}

type MockBankAuthorizator struct{ mock.Mock }

func (m *MockBankAuthorizator) UnmatchedTransactions(
	ctx context.Context,
	candidateNumbers []string,
) ([]ports.BankTransaction, error) {
	args := m.Called(ctx, candidateNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.BankTransaction), args.Error(1)
}

func (m *MockBankAuthorizator) Authorize(
	ctx context.Context,
	expected map[string]kernel.Money,
	tolerance decimal.Decimal,
	onMatch ports.BankMatchFunc,
) error {
	args := m.Called(ctx, expected, tolerance, onMatch)
	return args.Error(0)
}

type MockCarrierAdapter struct{ mock.Mock }

func (m *MockCarrierAdapter) CompatibleCarriers() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockCarrierAdapter) CreateShipmentBatch(
	ctx context.Context, carrierCode string, shipments []ports.Shipment,
) ([]ports.ShipmentResult, error) {
	args := m.Called(ctx, carrierCode, shipments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.ShipmentResult), args.Error(1)
}

type MockCarrierRegistry struct{ mock.Mock }

func (m *MockCarrierRegistry) AdapterFor(carrierCode string) (ports.CarrierAdapter, error) {
	args := m.Called(carrierCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.CarrierAdapter), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2025, 3, 23, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestEngine(t *testing.T, notifier ports.NotificationSender, invoicer ports.InvoiceIssuer) *services.TransitionEngine {
	t.Helper()
	effects, err := services.NewSideEffectDispatcher(notifier, invoicer, discardLogger())
	require.NoError(t, err)
	engine, err := services.NewTransitionEngine(effects, fixedClock, discardLogger())
	require.NoError(t, err)
	return engine
}

func money(t *testing.T, value string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(value), "CZK")
	require.NoError(t, err)
	return m
}

func newStatus(t *testing.T, code string, position int) *status.Status {
	t.Helper()
	st, err := status.NewStatus(kernel.NewUUID(), code, "", position)
	require.NoError(t, err)
	return st
}

func newOrderAt(t *testing.T, number, price string, st *status.Status, insertedAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), number, "hash-"+number, money(t, price), st, insertedAt)
	require.NoError(t, err)
	return o
}

func newTestOrder(t *testing.T, number, price string, st *status.Status) *order.Order {
	t.Helper()
	return newOrderAt(t, number, price, st, fixedNow.Add(-48*time.Hour))
}
