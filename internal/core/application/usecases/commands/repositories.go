// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shoporder/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest unit of work it needs; every interface
// below is satisfied by ports.UnitOfWork, and each one embedding the
// transition repositories also satisfies the transition engine's stores.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// StatusRepoFactory provides access to the status registry within a transaction.
	StatusRepoFactory interface {
		StatusRepository() ports.StatusRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HistoryRepoFactory provides access to the status history within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// BankPaymentRepoFactory provides access to recorded bank payments within a transaction.
	BankPaymentRepoFactory interface {
		BankPaymentRepository() ports.BankPaymentRepository
	}

	// OnlinePaymentRepoFactory provides access to gateway payment sessions within a transaction.
	OnlinePaymentRepoFactory interface {
		OnlinePaymentRepository() ports.OnlinePaymentRepository
	}

	// PackageRepoFactory provides access to carrier packages within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// TransitionUoW manages transactions for plain status changes: the order,
	// the status registry, and the append-only history move together.
	TransitionUoW interface {
		TxManager
		StatusRepoFactory
		OrderRepoFactory
		HistoryRepoFactory
	}

	// TransitionUoWFactory creates new transition unit of work instances.
	TransitionUoWFactory interface {
		Create() TransitionUoW
	}

	// ReconcileUoW manages transactions for the payment reconciliation sweeps,
	// which additionally record matched bank transactions.
	ReconcileUoW interface {
		TransitionUoW
		BankPaymentRepoFactory
	}

	// ReconcileUoWFactory creates new reconcile unit of work instances.
	// The bank-matching phase creates one unit of work per matched
	// transaction, so each match commits independently.
	ReconcileUoWFactory interface {
		Create() ReconcileUoW
	}

	// PaymentUoW manages transactions for gateway payment operations.
	PaymentUoW interface {
		TransitionUoW
		OnlinePaymentRepoFactory
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// DispatchUoW manages transactions for carrier batch dispatch: orders and
	// their packages are persisted in one all-or-nothing commit.
	DispatchUoW interface {
		TransitionUoW
		PackageRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}
)
