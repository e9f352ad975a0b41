package commands

import (
	"context"
	"log/slog"
	"time"

	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/model/order"
	domainservices "shoporder/internal/core/domain/services"
	"shoporder/internal/core/ports"
)

// PaymentRedirect is where the customer's browser is sent next, with an
// optional message the storefront shows after the redirect. Payment endpoints
// always produce a redirect: gateway trouble degrades into a redirect back to
// the order page with an explanatory message, never into a dead end.
type PaymentRedirect struct {
	URL     string
	Message string
}

// CreatePaymentCommandHandler opens hosted-gateway payment sessions.
//
// A successful call persists the session under the compound key (gateway
// payment id, order hash) and redirects the customer to the gateway. A failed
// gateway call is logged and answered with a redirect to the fallback URL;
// the customer can retry, and no session row is left behind.
type CreatePaymentCommandHandler struct {
	uowFactory  PaymentUoWFactory
	gateway     ports.GatewayClient
	lines       domainservices.PaymentLineBuilder
	fallbackURL string
	clock       func() time.Time
	logger      *slog.Logger
}

// NewCreatePaymentCommandHandler creates a handler for payment session creation.
func NewCreatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.GatewayClient,
	fallbackURL string,
	clock func() time.Time,
	logger *slog.Logger,
) CreatePaymentCommandHandler {
	if clock == nil {
		clock = time.Now
	}
	return CreatePaymentCommandHandler{
		uowFactory:  uowFactory,
		gateway:     gateway,
		lines:       domainservices.NewPaymentLineBuilder(),
		fallbackURL: fallbackURL,
		clock:       clock,
		logger:      logger.With("component", "create-payment"),
	}
}

// Handle processes the payment session request.
func (h *CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (PaymentRedirect, error) {
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

	o, err := uow.OrderRepository().GetByHash(ctx, cmd.OrderHash())
	if err != nil {
		return PaymentRedirect{}, err
	}

	if o.IsPaid() {
		return PaymentRedirect{
			URL:     h.fallbackURL,
			Message: "Order is already paid.",
		}, nil
	}

	spec := ports.PaymentSpec{
		OrderNumber: o.Number(),
		OrderHash:   o.Hash(),
		Total:       o.EffectivePrice(),
		Lines:       h.lines.Build(o),
		ReturnURL:   cmd.ReturnURL(),
	}

	created, err := h.gateway.CreatePayment(ctx, spec)
	if err != nil {
		h.logger.Error("gateway payment creation failed",
			"order", o.Number(),
			"error", err)
		return PaymentRedirect{
			URL:     h.fallbackURL,
			Message: "Payment could not be started, please try again.",
		}, nil
	}

	payment, err := order.NewOnlinePayment(
		kernel.NewUUID(),
		created.ID,
		o.ID(),
		o.Hash(),
		o.EffectivePrice(),
		string(ports.PaymentStatePending),
		h.clock().UTC(),
	)
	if err != nil {
		return PaymentRedirect{}, err
	}

	if err := uow.OnlinePaymentRepository().Add(ctx, payment); err != nil {
		return PaymentRedirect{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return PaymentRedirect{}, err
	}

	return PaymentRedirect{URL: created.RedirectURL}, nil
}
