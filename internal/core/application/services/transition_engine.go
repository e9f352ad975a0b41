package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
	"shoporder/internal/core/domain/model/status"
	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"
)

// TransitionStores is the slice of a unit of work the transition engine
// needs. Any ports.UnitOfWork satisfies it; commands pass their own narrowed
// unit of work so the transition joins the command's transaction.
type TransitionStores interface {
	StatusRepository() ports.StatusRepository
	OrderRepository() ports.OrderRepository
	HistoryRepository() ports.HistoryRepository
}

// TransitionEngine is the single entry point for moving an order between
// statuses. Every status change in the system goes through Transition; nothing
// else mutates an order's status.
//
// The engine is deliberately permissive about codes: an unknown target code is
// created in the registry on the fly (with a warning) instead of failing the
// transition. Strictness lives in what happens around the move, not in the
// move itself:
//
//   - moving to the status the order is already in is a silent no-op
//   - a redirecting status is followed exactly one hop, and both the
//     requested status and the landing status are recorded in history
//   - side effects and listeners run after the move is persisted and their
//     failures never undo it
type TransitionEngine struct {
	effects   *SideEffectDispatcher
	listeners []ports.TransitionListener
	clock     func() time.Time
	logger    *slog.Logger
}

// NewTransitionEngine creates a transition engine. A nil clock defaults to
// time.Now; tests and the reconciliation sweeps inject their own.
func NewTransitionEngine(
	effects *SideEffectDispatcher,
	clock func() time.Time,
	logger *slog.Logger,
) (*TransitionEngine, error) {
	if effects == nil {
		return nil, errs.NewValueIsRequiredError("effects")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if clock == nil {
		clock = time.Now
	}

	return &TransitionEngine{
		effects: effects,
		clock:   clock,
		logger:  logger.With("component", "transition-engine"),
	}, nil
}

// AddListener registers a transition listener. Listeners run after the
// built-in side effects, in registration order.
func (e *TransitionEngine) AddListener(l ports.TransitionListener) {
	e.listeners = append(e.listeners, l)
}

// Transition moves the order to the status with the given code, following a
// one-hop redirect when the target carries one. The order update and the
// history rows are written through the caller's stores and share the caller's
// transaction; side effects and listeners fire only after those writes
// succeeded.
func (e *TransitionEngine) Transition(
	ctx context.Context,
	stores TransitionStores,
	o *order.Order,
	targetCode string,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if targetCode == "" {
		return errs.NewValueIsRequiredError("targetCode")
	}

	target, err := e.resolveStatus(ctx, stores, targetCode)
	if err != nil {
		return err
	}

	return e.apply(ctx, stores, o, target)
}

// TransitionToStatus moves the order to an already-resolved status entity,
// skipping the registry lookup. Redirects on the target are still followed.
func (e *TransitionEngine) TransitionToStatus(
	ctx context.Context,
	stores TransitionStores,
	o *order.Order,
	target *status.Status,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	return e.apply(ctx, stores, o, target)
}

func (e *TransitionEngine) apply(
	ctx context.Context,
	stores TransitionStores,
	o *order.Order,
	target *status.Status,
) error {
	from := o.Status()
	if from != nil && from.IsEqual(target) {
		return nil
	}

	recorded := []*status.Status{target}
	final := target
	if target.HasRedirect() {
		redirected, err := e.resolveStatus(ctx, stores, target.RedirectTo())
		if err != nil {
			return err
		}
		recorded = append(recorded, redirected)
		final = redirected
	}

	now := e.clock().UTC()
	if err := o.SetStatus(final, now); err != nil {
		return err
	}
	if err := stores.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	for _, st := range recorded {
		entry, err := order.NewHistoryEntry(kernel.NewUUID(), o.ID(), st.ID(), now)
		if err != nil {
			return err
		}
		if err := stores.HistoryRepository().Add(ctx, entry); err != nil {
			return err
		}
	}

	e.effects.Dispatch(ctx, o, final.Code())

	for _, l := range e.listeners {
		if err := l.OnTransition(ctx, o, from, final); err != nil {
			e.logger.Warn("transition listener failed",
				"order", o.Number(),
				"status", final.Code(),
				"error", err)
		}
	}

	return nil
}

// resolveStatus finds the status row for the code, creating it when missing.
// The created row gets the code as its label and the next free position, so a
// typo in an admin screen degrades into a visible oddly-named status instead
// of a failed operation.
func (e *TransitionEngine) resolveStatus(
	ctx context.Context,
	stores TransitionStores,
	code string,
) (*status.Status, error) {
	st, err := stores.StatusRepository().GetByCode(ctx, code)
	if err == nil {
		return st, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	all, err := stores.StatusRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	maxPosition := 0
	for _, existing := range all {
		if existing.Position() > maxPosition {
			maxPosition = existing.Position()
		}
	}

	created, err := status.NewStatus(kernel.NewUUID(), code, "", maxPosition+1)
	if err != nil {
		return nil, err
	}
	if err := stores.StatusRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	e.logger.Warn("unknown status code, created on the fly",
		"code", code,
		"position", created.Position())

	return created, nil
}
