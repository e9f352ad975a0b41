package services_test

import (
	"errors"
	"testing"
	"time"

	"shoporder/internal/core/application/services"
	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/core/domain/model/status"
	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, notifier *MockNotificationSender, invoicer ports.InvoiceIssuer) *services.TransitionEngine {
	t.Helper()
	effects, err := services.NewSideEffectDispatcher(notifier, invoicer, discardLogger())
	require.NoError(t, err)
	clock := func() time.Time { return time.Date(2025, 3, 23, 12, 0, 0, 0, time.UTC) }
	engine, err := services.NewTransitionEngine(effects, clock, discardLogger())
	require.NoError(t, err)
	return engine
}

func TestTransitionEngine_Transition_Success(t *testing.T) {
	ctx := t.Context()

	newSt := newStatus(t, status.CodeNew, 1)
	sentSt := newStatus(t, status.CodeSent, 4)
	testOrder := newOrder(t, "100024", newSt)

	stores := newTestStores()
	notifier := new(MockNotificationSender)

	mock.InOrder(
		stores.statuses.On("GetByCode", ctx, status.CodeSent).Return(sentSt, nil).Once(),
		stores.orders.On("Update", ctx, testOrder).Return(nil).Once(),
		stores.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once(),
		notifier.On("Notify", ctx, testOrder, "order-sent").Return(nil).Once(),
	)

	engine := newEngine(t, notifier, nil)
	err := engine.Transition(ctx, stores, testOrder, status.CodeSent)

	require.NoError(t, err)
	assert.Equal(t, status.CodeSent, testOrder.Status().Code())
	assert.Equal(t, time.Date(2025, 3, 23, 12, 0, 0, 0, time.UTC), testOrder.UpdatedAt())
	stores.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionEngine_Transition_SameStatusIsNoOp(t *testing.T) {
	ctx := t.Context()

	newSt := newStatus(t, status.CodeNew, 1)
	testOrder := newOrder(t, "100024", newSt)
	before := testOrder.UpdatedAt()

	stores := newTestStores()
	notifier := new(MockNotificationSender)
	stores.statuses.On("GetByCode", ctx, status.CodeNew).Return(newSt, nil).Once()

	engine := newEngine(t, notifier, nil)
	err := engine.Transition(ctx, stores, testOrder, status.CodeNew)

	require.NoError(t, err)
	assert.Equal(t, before, testOrder.UpdatedAt())
	stores.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	stores.history.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionEngine_Transition_FollowsRedirectOneHop(t *testing.T) {
	ctx := t.Context()

	sentSt := newStatus(t, status.CodeSent, 4)
	returnedSt := newStatus(t, status.CodeReturned, 8)
	require.NoError(t, returnedSt.SetRedirect(status.CodeStorno))
	stornoSt := newStatus(t, status.CodeStorno, 6)

	testOrder := newOrder(t, "100024", sentSt)

	stores := newTestStores()
	notifier := new(MockNotificationSender)

	mock.InOrder(
		stores.statuses.On("GetByCode", ctx, status.CodeReturned).Return(returnedSt, nil).Once(),
		stores.statuses.On("GetByCode", ctx, status.CodeStorno).Return(stornoSt, nil).Once(),
		stores.orders.On("Update", ctx, testOrder).Return(nil).Once(),
		// History records both the requested status and the landing status.
		stores.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Twice(),
		notifier.On("Notify", ctx, testOrder, "order-storno").Return(nil).Once(),
	)

	engine := newEngine(t, notifier, nil)
	err := engine.Transition(ctx, stores, testOrder, status.CodeReturned)

	require.NoError(t, err)
	assert.Equal(t, status.CodeStorno, testOrder.Status().Code())

	first := stores.history.Calls[0].Arguments[1].(*order.HistoryEntry)
	second := stores.history.Calls[1].Arguments[1].(*order.HistoryEntry)
	assert.True(t, returnedSt.ID().IsEqual(first.StatusID()))
	assert.True(t, stornoSt.ID().IsEqual(second.StatusID()))
	stores.AssertExpectations(t)
}

func TestTransitionEngine_Transition_RedirectIsNeverChained(t *testing.T) {
	ctx := t.Context()

	sentSt := newStatus(t, status.CodeSent, 4)
	returnedSt := newStatus(t, status.CodeReturned, 8)
	require.NoError(t, returnedSt.SetRedirect(status.CodeStorno))
	// The landing status redirects further, but only one hop is ever taken.
	stornoSt := newStatus(t, status.CodeStorno, 6)
	require.NoError(t, stornoSt.SetRedirect(status.CodeNew))

	testOrder := newOrder(t, "100024", sentSt)

	stores := newTestStores()
	notifier := new(MockNotificationSender)

	mock.InOrder(
		stores.statuses.On("GetByCode", ctx, status.CodeReturned).Return(returnedSt, nil).Once(),
		stores.statuses.On("GetByCode", ctx, status.CodeStorno).Return(stornoSt, nil).Once(),
		stores.orders.On("Update", ctx, testOrder).Return(nil).Once(),
		stores.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Twice(),
		notifier.On("Notify", ctx, testOrder, "order-storno").Return(nil).Once(),
	)

	engine := newEngine(t, notifier, nil)
	err := engine.Transition(ctx, stores, testOrder, status.CodeReturned)

	require.NoError(t, err)
	assert.Equal(t, status.CodeStorno, testOrder.Status().Code())
	stores.statuses.AssertNotCalled(t, "GetByCode", ctx, status.CodeNew)
	assert.Len(t, stores.history.Calls, 2)
	stores.AssertExpectations(t)
}

func TestTransitionEngine_Transition_CreatesUnknownStatus(t *testing.T) {
	ctx := t.Context()

	newSt := newStatus(t, status.CodeNew, 1)
	testOrder := newOrder(t, "100024", newSt)
	existing := []*status.Status{newSt, newStatus(t, status.CodeDone, 5)}

	stores := newTestStores()
	notifier := new(MockNotificationSender)

	mock.InOrder(
		stores.statuses.On("GetByCode", ctx, "on-hold").
			Return(nil, errs.NewObjectNotFoundError("code", "on-hold")).Once(),
		stores.statuses.On("GetAll", ctx).Return(existing, nil).Once(),
		stores.statuses.On("Add", ctx, mock.AnythingOfType("*status.Status")).Return(nil).Once(),
		stores.orders.On("Update", ctx, testOrder).Return(nil).Once(),
		stores.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once(),
	)

	engine := newEngine(t, notifier, nil)
	err := engine.Transition(ctx, stores, testOrder, "on-hold")

	require.NoError(t, err)
	assert.Equal(t, "on-hold", testOrder.Status().Code())

	created := stores.statuses.Calls[2].Arguments[1].(*status.Status)
	assert.Equal(t, "on-hold", created.Code())
	assert.Equal(t, "on-hold", created.Label(), "label falls back to the code")
	assert.Equal(t, 6, created.Position(), "created status is appended after the highest position")
	stores.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionEngine_Transition_EffectFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()

	newSt := newStatus(t, status.CodeNew, 1)
	sentSt := newStatus(t, status.CodeSent, 4)
	testOrder := newOrder(t, "100024", newSt)

	stores := newTestStores()
	notifier := new(MockNotificationSender)

	mock.InOrder(
		stores.statuses.On("GetByCode", ctx, status.CodeSent).Return(sentSt, nil).Once(),
		stores.orders.On("Update", ctx, testOrder).Return(nil).Once(),
		stores.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once(),
		notifier.On("Notify", ctx, testOrder, "order-sent").Return(errors.New("smtp down")).Once(),
	)

	engine := newEngine(t, notifier, nil)
	err := engine.Transition(ctx, stores, testOrder, status.CodeSent)

	require.NoError(t, err, "a failed notification never undoes a persisted transition")
	assert.Equal(t, status.CodeSent, testOrder.Status().Code())
}

func TestTransitionEngine_Transition_ListenerFailureDoesNotBlockOthers(t *testing.T) {
	ctx := t.Context()

	newSt := newStatus(t, status.CodeNew, 1)
	preparingSt := newStatus(t, status.CodePreparing, 3)
	testOrder := newOrder(t, "100024", newSt)

	stores := newTestStores()
	notifier := new(MockNotificationSender)

	stores.statuses.On("GetByCode", ctx, status.CodePreparing).Return(preparingSt, nil).Once()
	stores.orders.On("Update", ctx, testOrder).Return(nil).Once()
	stores.history.On("Add", ctx, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once()
	notifier.On("Notify", ctx, testOrder, "order-preparing").Return(nil).Once()

	failing := new(MockTransitionListener)
	failing.On("OnTransition", ctx, testOrder, newSt, preparingSt).Return(errors.New("webhook 500")).Once()
	second := new(MockTransitionListener)
	second.On("OnTransition", ctx, testOrder, newSt, preparingSt).Return(nil).Once()

	engine := newEngine(t, notifier, nil)
	engine.AddListener(failing)
	engine.AddListener(second)

	err := engine.Transition(ctx, stores, testOrder, status.CodePreparing)

	require.NoError(t, err)
	failing.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestTransitionEngine_Transition_UpdateErrorAborts(t *testing.T) {
	ctx := t.Context()

	newSt := newStatus(t, status.CodeNew, 1)
	sentSt := newStatus(t, status.CodeSent, 4)
	testOrder := newOrder(t, "100024", newSt)

	stores := newTestStores()
	notifier := new(MockNotificationSender)

	mock.InOrder(
		stores.statuses.On("GetByCode", ctx, status.CodeSent).Return(sentSt, nil).Once(),
		stores.orders.On("Update", ctx, testOrder).Return(errors.New("database error")).Once(),
	)

	engine := newEngine(t, notifier, nil)
	err := engine.Transition(ctx, stores, testOrder, status.CodeSent)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	stores.history.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}
