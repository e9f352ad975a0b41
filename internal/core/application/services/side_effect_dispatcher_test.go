package services_test

import (
	"context"
	"errors"
	"testing"

	"shoporder/internal/core/application/services"
	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/core/domain/model/status"
	"shoporder/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T, notifier *MockNotificationSender, invoicer ports.InvoiceIssuer) *services.SideEffectDispatcher {
	t.Helper()
	d, err := services.NewSideEffectDispatcher(notifier, invoicer, discardLogger())
	require.NoError(t, err)
	return d
}

func TestSideEffectDispatcher_Dispatch_Paid(t *testing.T) {
	ctx := t.Context()
	testOrder := newOrder(t, "100024", newStatus(t, status.CodePaid, 2))

	notifier := new(MockNotificationSender)
	invoicer := new(MockInvoiceIssuer)

	mock.InOrder(
		notifier.On("Notify", ctx, testOrder, "order-paid").Return(nil).Once(),
		invoicer.On("CreateInvoice", ctx, testOrder).Return(ports.Invoice{Number: "FV-2025-0042"}, nil).Once(),
	)

	d := newDispatcher(t, notifier, invoicer)
	d.Dispatch(ctx, testOrder, status.CodePaid)

	notifier.AssertExpectations(t)
	invoicer.AssertExpectations(t)
}

func TestSideEffectDispatcher_Dispatch_DoneSkipsExistingInvoice(t *testing.T) {
	ctx := t.Context()
	testOrder := newOrder(t, "100024", newStatus(t, status.CodeDone, 5))

	notifier := new(MockNotificationSender)
	invoicer := new(MockInvoiceIssuer)
	invoicer.On("IsInvoiced", ctx, testOrder).Return(true, nil).Once()

	d := newDispatcher(t, notifier, invoicer)
	d.Dispatch(ctx, testOrder, status.CodeDone)

	invoicer.AssertExpectations(t)
	invoicer.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
}

func TestSideEffectDispatcher_Dispatch_DoneInvoicesWhenMissing(t *testing.T) {
	ctx := t.Context()
	testOrder := newOrder(t, "100024", newStatus(t, status.CodeDone, 5))

	notifier := new(MockNotificationSender)
	invoicer := new(MockInvoiceIssuer)

	mock.InOrder(
		invoicer.On("IsInvoiced", ctx, testOrder).Return(false, nil).Once(),
		invoicer.On("CreateInvoice", ctx, testOrder).Return(ports.Invoice{Number: "FV-2025-0043"}, nil).Once(),
	)

	d := newDispatcher(t, notifier, invoicer)
	d.Dispatch(ctx, testOrder, status.CodeDone)

	invoicer.AssertExpectations(t)
}

func TestSideEffectDispatcher_Dispatch_WithoutInvoicer(t *testing.T) {
	ctx := t.Context()
	testOrder := newOrder(t, "100024", newStatus(t, status.CodePaid, 2))

	notifier := new(MockNotificationSender)
	notifier.On("Notify", ctx, testOrder, "order-paid").Return(nil).Once()

	// The missing invoicer is logged when the invoice effect fires, nothing
	// more. Notifications still go out.
	d := newDispatcher(t, notifier, nil)
	d.Dispatch(ctx, testOrder, status.CodePaid)

	notifier.AssertExpectations(t)
}

func TestSideEffectDispatcher_Dispatch_UnknownCodeFiresNothing(t *testing.T) {
	ctx := t.Context()
	testOrder := newOrder(t, "100024", newStatus(t, "on-hold", 9))

	notifier := new(MockNotificationSender)
	invoicer := new(MockInvoiceIssuer)

	d := newDispatcher(t, notifier, invoicer)
	d.Dispatch(ctx, testOrder, "on-hold")

	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	invoicer.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
}

func TestSideEffectDispatcher_Dispatch_FailureDoesNotStopRemaining(t *testing.T) {
	ctx := t.Context()
	testOrder := newOrder(t, "100024", newStatus(t, status.CodePaid, 2))

	notifier := new(MockNotificationSender)
	invoicer := new(MockInvoiceIssuer)

	notifier.On("Notify", ctx, testOrder, "order-paid").Return(errors.New("smtp down")).Once()
	invoicer.On("CreateInvoice", ctx, testOrder).Return(ports.Invoice{Number: "FV-2025-0044"}, nil).Once()

	d := newDispatcher(t, notifier, invoicer)
	d.Dispatch(ctx, testOrder, status.CodePaid)

	invoicer.AssertExpectations(t)
}

func TestSideEffectDispatcher_Register(t *testing.T) {
	ctx := t.Context()
	testOrder := newOrder(t, "100024", newStatus(t, status.CodeSent, 4))

	notifier := new(MockNotificationSender)
	notifier.On("Notify", ctx, testOrder, "order-sent").Return(nil).Once()

	called := false
	d := newDispatcher(t, notifier, nil)
	d.Register(status.CodeSent, func(ctx context.Context, o *order.Order) error {
		called = true
		assert.Equal(t, "100024", o.Number())
		return nil
	})
	d.Dispatch(ctx, testOrder, status.CodeSent)

	assert.True(t, called, "registered effects run after the defaults")
	notifier.AssertExpectations(t)
}
