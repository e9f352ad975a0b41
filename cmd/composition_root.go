package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shoporder/internal/adapters/out/carrier"
	"shoporder/internal/adapters/out/inmem"
	"shoporder/internal/adapters/out/postgres"
	"shoporder/internal/core/application/services"
	"shoporder/internal/core/application/usecases/commands"
	"shoporder/internal/core/application/usecases/queries"
	"shoporder/internal/core/domain/model/status"
	domainservices "shoporder/internal/core/domain/services"
	"shoporder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
// The in-memory adapters (bank feed, gateway, notifier, invoicer, carrier)
// are the default outbound wiring; production deployments swap them here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	notifier  *inmem.Notifier
	invoicer  *inmem.Invoicer
	gateway   *inmem.Gateway
	bankFeed  *inmem.BankFeed
	carriers  *carrier.Registry
	engine    *services.TransitionEngine
	planner   domainservices.SweepPlanner
	tolerance decimal.Decimal

	orderPageURL      string
	reconcileSchedule string
}

// NewCompositionRoot builds the full object graph from the configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	notifier := inmem.NewNotifier(logger)
	invoicer := inmem.NewInvoicer(nil)

	effects, err := services.NewSideEffectDispatcher(notifier, invoicer, logger)
	if err != nil {
		return nil, fmt.Errorf("side effect dispatcher: %w", err)
	}

	engine, err := services.NewTransitionEngine(effects, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("transition engine: %w", err)
	}

	planner, err := domainservices.NewSweepPlanner(
		time.Duration(config.CancelAfterDays)*24*time.Hour,
		time.Duration(config.PingAfterDays)*24*time.Hour,
		time.Duration(config.CompleteAfterDays)*24*time.Hour,
	)
	if err != nil {
		return nil, fmt.Errorf("sweep planner: %w", err)
	}

	tolerance, err := decimal.NewFromString(config.BankTolerance)
	if err != nil {
		return nil, fmt.Errorf("bank tolerance: %w", err)
	}

	carriers, err := carrier.NewRegistry(
		inmem.NewCarrierAdapter("ppl", "zasilkovna"),
	)
	if err != nil {
		return nil, fmt.Errorf("carrier registry: %w", err)
	}

	return &CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:            logger,
		notifier:          notifier,
		invoicer:          invoicer,
		gateway:           inmem.NewGateway(config.GatewayPageURL),
		bankFeed:          inmem.NewBankFeed(),
		carriers:          carriers,
		engine:            engine,
		planner:           planner,
		tolerance:         tolerance,
		orderPageURL:      config.OrderPageURL,
		reconcileSchedule: config.ReconcileSchedule,
	}, nil
}

// SeedStatuses inserts the default status registry rows that are missing.
// Existing rows are left untouched, operator edits survive restarts.
func (c *CompositionRoot) SeedStatuses(ctx context.Context) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, st := range status.Defaults() {
		_, err := uow.StatusRepository().GetByCode(ctx, st.Code())
		if err == nil {
			continue
		}

		var notFoundErr *errs.ObjectNotFoundError
		if !errors.As(err, &notFoundErr) {
			return err
		}

		if err := uow.StatusRepository().Add(ctx, st); err != nil {
			return err
		}
		c.logger.Info("status seeded", "code", st.Code())
	}

	return uow.Commit(ctx)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.TransitionUoWFactory = FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.engine)
}

func (c *CompositionRoot) CreateCreatePaymentCommandHandler() commands.CreatePaymentCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePaymentCommandHandler(f, c.gateway, c.orderPageURL, nil, c.logger)
}

func (c *CompositionRoot) CreateCheckPaymentStatusCommandHandler() commands.CheckPaymentStatusCommandHandler {
	var f commands.PaymentUoWFactory = FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckPaymentStatusCommandHandler(f, c.gateway, c.engine, c.orderPageURL, nil, c.logger)
}

func (c *CompositionRoot) CreateReconcilePaymentsCommandHandler() commands.ReconcilePaymentsCommandHandler {
	var f commands.ReconcileUoWFactory = FuncReconcileUoWFactory(func() commands.ReconcileUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcilePaymentsCommandHandler(
		f, c.bankFeed, c.notifier, c.engine, c.planner, c.tolerance, nil, c.logger)
}

func (c *CompositionRoot) CreateCreatePackagesCommandHandler() commands.CreatePackagesCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePackagesCommandHandler(f, c.carriers, nil, c.logger)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllStatusesQueryHandler() queries.GetAllStatusesQueryHandler {
	return queries.NewGetAllStatusesQueryHandler(c.gormDB)
}

// ReconcileSchedule returns the cron expression for the reconciliation job.
func (c *CompositionRoot) ReconcileSchedule() string {
	return c.reconcileSchedule
}

// Logger returns the application logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncReconcileUoWFactory func() commands.ReconcileUoW

func (f FuncReconcileUoWFactory) Create() commands.ReconcileUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}
