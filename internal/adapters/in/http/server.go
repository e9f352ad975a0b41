// Package http exposes the order lifecycle over a REST API. Customer-facing
// payment endpoints answer with redirects that always land the shopper on a
// page (the gateway or the shop's order page with a message), never on a dead
// end; gateway outcomes are verified server-to-server, never trusted from the
// browser.
package http

import (
	"errors"
	"net/http"
	"net/url"

	"shoporder/internal/core/application/usecases/commands"
	"shoporder/internal/core/application/usecases/queries"
	"shoporder/internal/core/domain/model/kernel"
	"shoporder/internal/core/domain/services"
	"shoporder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	createPaymentHandler      commands.CreatePaymentCommandHandler
	checkPaymentStatusHandler commands.CheckPaymentStatusCommandHandler
	createPackagesHandler     commands.CreatePackagesCommandHandler

	// Query handlers
	getOrderSummaryHandler queries.GetOrderSummaryQueryHandler
	getAllStatusesHandler  queries.GetAllStatusesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	createPaymentHandler commands.CreatePaymentCommandHandler,
	checkPaymentStatusHandler commands.CheckPaymentStatusCommandHandler,
	createPackagesHandler commands.CreatePackagesCommandHandler,
	getOrderSummaryHandler queries.GetOrderSummaryQueryHandler,
	getAllStatusesHandler queries.GetAllStatusesQueryHandler,
) *Server {
	return &Server{
		changeOrderStatusHandler:  changeOrderStatusHandler,
		createPaymentHandler:      createPaymentHandler,
		checkPaymentStatusHandler: checkPaymentStatusHandler,
		createPackagesHandler:     createPackagesHandler,
		getOrderSummaryHandler:    getOrderSummaryHandler,
		getAllStatusesHandler:     getAllStatusesHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/statuses", s.GetStatuses)
	e.GET("/api/v1/orders/:hash", s.GetOrderSummary)
	e.POST("/api/v1/orders/:hash/payment", s.StartPayment)
	e.GET("/api/v1/orders/:hash/payment/return", s.FinishPayment)
	e.POST("/api/v1/admin/orders/:id/status", s.ChangeOrderStatus)
	e.POST("/api/v1/admin/packages", s.CreatePackages)
}

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusResponse is one status registry row.
type StatusResponse struct {
	Code       string `json:"code"`
	Label      string `json:"label"`
	Position   int    `json:"position"`
	Color      string `json:"color"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// OrderSummaryResponse is the customer-facing order summary.
type OrderSummaryResponse struct {
	Number      string `json:"number"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
	StatusLabel string `json:"statusLabel"`
	StatusColor string `json:"statusColor"`
	Paid        bool   `json:"paid"`
}

// GetStatuses handles GET /api/v1/statuses - retrieves the status registry.
func (s *Server) GetStatuses(ctx echo.Context) error {
	query := queries.NewGetAllStatusesQuery()

	statuses, err := s.getAllStatusesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve statuses",
		})
	}

	response := make([]StatusResponse, len(statuses))
	for i, st := range statuses {
		response[i] = StatusResponse{
			Code:       st.Code,
			Label:      st.Label,
			Position:   st.Position,
			Color:      st.Color,
			RedirectTo: st.RedirectTo,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderSummary handles GET /api/v1/orders/:hash - retrieves one order
// summary by its public hash.
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	query, err := queries.NewGetOrderSummaryQuery(ctx.Param("hash"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order hash",
		})
	}

	summary, err := s.getOrderSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, OrderSummaryResponse{
		Number:      summary.Number,
		Total:       summary.Total.StringFixed(2),
		Currency:    summary.Currency,
		StatusLabel: summary.StatusLabel,
		StatusColor: summary.StatusColor,
		Paid:        summary.Paid,
	})
}

// StartPaymentRequest is the body of POST /orders/:hash/payment.
type StartPaymentRequest struct {
	ReturnURL string `json:"returnUrl"`
}

// StartPayment handles POST /api/v1/orders/:hash/payment - opens a gateway
// payment session and redirects the shopper to it (or back to the order page
// with a message when no session could be opened).
func (s *Server) StartPayment(ctx echo.Context) error {
	var body StartPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreatePaymentCommand(ctx.Param("hash"), body.ReturnURL)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid payment request: " + err.Error(),
		})
	}

	redirect, err := s.createPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to start payment",
		})
	}

	return s.redirectTo(ctx, redirect)
}

// FinishPayment handles GET /api/v1/orders/:hash/payment/return - the
// customer lands here from the gateway; the outcome itself is verified
// against the gateway, the query parameters only identify the session.
func (s *Server) FinishPayment(ctx echo.Context) error {
	cmd, err := commands.NewCheckPaymentStatusCommand(ctx.Param("hash"), ctx.QueryParam("paymentId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid payment return: " + err.Error(),
		})
	}

	redirect, err := s.checkPaymentStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to verify payment",
		})
	}

	return s.redirectTo(ctx, redirect)
}

// ChangeOrderStatusRequest is the body of POST /admin/orders/:id/status.
type ChangeOrderStatusRequest struct {
	StatusCode string `json:"statusCode"`
	Force      bool   `json:"force"`
}

// ChangeOrderStatus handles POST /api/v1/admin/orders/:id/status - moves an
// order to the requested status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var body ChangeOrderStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, body.StatusCode, body.Force)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid status change: " + err.Error(),
		})
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to change order status",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreatePackagesRequest is the body of POST /admin/packages.
type CreatePackagesRequest struct {
	OrderIDs []string `json:"orderIds"`
}

// CreatePackagesResponse carries the handover reference shared by the batch.
type CreatePackagesResponse struct {
	HandoverReference string `json:"handoverReference"`
}

// CreatePackages handles POST /api/v1/admin/packages - dispatches a batch of
// orders to their shared carrier.
func (s *Server) CreatePackages(ctx echo.Context) error {
	var body CreatePackagesRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid order id: " + raw,
			})
		}
		orderIDs = append(orderIDs, id)
	}

	cmd, err := commands.NewCreatePackagesCommand(orderIDs)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid package batch: " + err.Error(),
		})
	}

	handoverRef, err := s.createPackagesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		var notFoundErr *errs.ObjectNotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		if errors.Is(err, services.ErrMixedCarriers) ||
			errors.Is(err, services.ErrEmptyBatch) ||
			errors.Is(err, errs.ErrValueIsInvalid) ||
			errors.Is(err, errs.ErrValueIsRequired) {
			return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Code:    http.StatusUnprocessableEntity,
				Message: "Batch rejected: " + err.Error(),
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to dispatch packages",
		})
	}

	if handoverRef == "" {
		return ctx.NoContent(http.StatusNoContent)
	}

	return ctx.JSON(http.StatusCreated, CreatePackagesResponse{HandoverReference: handoverRef})
}

// redirectTo sends the shopper to the target URL, attaching the message as a
// query parameter when one is present.
func (s *Server) redirectTo(ctx echo.Context, redirect commands.PaymentRedirect) error {
	target := redirect.URL
	if redirect.Message != "" {
		parsed, err := url.Parse(target)
		if err == nil {
			q := parsed.Query()
			q.Set("message", redirect.Message)
			parsed.RawQuery = q.Encode()
			target = parsed.String()
		}
	}

	return ctx.Redirect(http.StatusSeeOther, target)
}
