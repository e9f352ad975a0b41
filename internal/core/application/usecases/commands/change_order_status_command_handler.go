package commands

import (
	"context"

	"shoporder/internal/core/application/services"
)

// ChangeOrderStatusCommandHandler handles manual status changes, typically
// coming from the admin API. The whole change (order row, history rows, a
// possibly auto-created status) commits atomically; side effects fire after
// the write through the transition engine.
type ChangeOrderStatusCommandHandler struct {
	uowFactory TransitionUoWFactory
	engine     *services.TransitionEngine
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory TransitionUoWFactory,
	engine *services.TransitionEngine,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle processes the status change command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := h.engine.Transition(ctx, uow, o, cmd.StatusCode()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
