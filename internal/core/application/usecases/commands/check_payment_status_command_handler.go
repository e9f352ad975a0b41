package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shoporder/internal/core/application/services"
	"shoporder/internal/core/domain/model/status"
	"shoporder/internal/core/ports"
	"shoporder/internal/pkg/errs"
)

// CheckPaymentStatusCommandHandler verifies a payment when the customer
// returns from the gateway and applies the outcome to the order.
//
// The handler never trusts the return redirect itself: the authoritative
// state always comes from a server-to-server verification call. And it never
// strands the customer: an unknown session, an already-paid order, or a
// gateway outage all resolve into a redirect with a message, with no state
// change beyond what was verified.
type CheckPaymentStatusCommandHandler struct {
	uowFactory  PaymentUoWFactory
	gateway     ports.GatewayClient
	engine      *services.TransitionEngine
	fallbackURL string
	clock       func() time.Time
	logger      *slog.Logger
}

// NewCheckPaymentStatusCommandHandler creates a handler for return-URL verification.
func NewCheckPaymentStatusCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.GatewayClient,
	engine *services.TransitionEngine,
	fallbackURL string,
	clock func() time.Time,
	logger *slog.Logger,
) CheckPaymentStatusCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return CheckPaymentStatusCommandHandler{
		uowFactory:  uowFactory,
		gateway:     gateway,
		engine:      engine,
		fallbackURL: fallbackURL,
		clock:       clock,
		logger:      logger.With("component", "check-payment"),
	}
}

// Handle processes the returned payment.
func (h *CheckPaymentStatusCommandHandler) Handle(ctx context.Context, cmd CheckPaymentStatusCommand) (PaymentRedirect, error) {
	if err := cmd.Validate(); err != nil {
		return PaymentRedirect{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PaymentRedirect{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payment, err := uow.OnlinePaymentRepository().GetByGatewayAndHash(ctx, cmd.GatewayPaymentID(), cmd.OrderHash())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			// Forged or stale return URL. Nothing to verify, nothing changes.
			h.logger.Warn("payment session not found",
				"orderHash", cmd.OrderHash(),
				"gatewayID", cmd.GatewayPaymentID())
			return PaymentRedirect{
				URL:     h.fallbackURL,
				Message: "Payment could not be verified.",
			}, nil
		}
		return PaymentRedirect{}, err
	}

	o, err := uow.OrderRepository().Get(ctx, payment.OrderID())
	if err != nil {
		return PaymentRedirect{}, err
	}

	if o.IsPaid() {
		return PaymentRedirect{
			URL:     h.fallbackURL,
			Message: "Order is already paid.",
		}, nil
	}

	state, err := h.gateway.Verify(ctx, payment.GatewayID())
	if err != nil {
		h.logger.Error("gateway verification failed",
			"order", o.Number(),
			"gatewayID", payment.GatewayID(),
			"error", err)
		return PaymentRedirect{
			URL:     h.fallbackURL,
			Message: "Payment verification is temporarily unavailable, please check back shortly.",
		}, nil
	}

	now := h.clock().UTC()
	changed := payment.RecordStatus(string(state), now)
	if err := uow.OnlinePaymentRepository().Update(ctx, payment); err != nil {
		return PaymentRedirect{}, err
	}

	redirect := PaymentRedirect{URL: h.fallbackURL, Message: "Payment is being processed."}

	switch {
	case state == ports.PaymentStatePaid:
		o.MarkPaid(now)
		if err := h.engine.Transition(ctx, uow, o, status.CodePaid); err != nil {
			return PaymentRedirect{}, err
		}
		redirect.Message = "Payment received, thank you."

	case state == ports.PaymentStateCancelled && changed:
		// Only an actual change drives the failure transition; re-visiting
		// the return URL with the same cancelled payment does nothing more.
		if err := h.engine.Transition(ctx, uow, o, status.CodePaymentFailed); err != nil {
			return PaymentRedirect{}, err
		}
		redirect.Message = "Payment was not completed."

	case state == ports.PaymentStateCancelled:
		redirect.Message = "Payment was not completed."
	}

	if err := uow.Commit(ctx); err != nil {
		return PaymentRedirect{}, err
	}

	return redirect, nil
}
