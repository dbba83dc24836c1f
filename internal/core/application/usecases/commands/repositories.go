// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"backoffice/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest set of repositories it uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	MaterialRepoFactory interface {
		MaterialRepository() ports.MaterialRepository
	}

	RecipeRepoFactory interface {
		RecipeRepository() ports.RecipeRepository
	}

	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	ConflictRepoFactory interface {
		ConflictRepository() ports.ConflictRepository
	}

	// OrderUoW covers order writes that need catalog lookups but move no stock.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		RecipeRepoFactory
		ConflictRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CatalogUoW covers master data writes: materials, suppliers, products
	// and recipes, plus opening balances booked through the ledger.
	CatalogUoW interface {
		TxManager
		MaterialRepoFactory
		RecipeRepoFactory
		LedgerRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// StockUoW covers direct stock bookings and material edits.
	StockUoW interface {
		TxManager
		MaterialRepoFactory
		LedgerRepoFactory
		ConflictRepoFactory
	}

	StockUoWFactory interface {
		Create() StockUoW
	}

	ConflictUoW interface {
		TxManager
		ConflictRepoFactory
	}

	ConflictUoWFactory interface {
		Create() ConflictUoW
	}

	// UoW spans everything a status transition touches: the order row, its
	// recipes, the ledger and conflict records, in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... transition, book stock
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		RecipeRepoFactory
		LedgerRepoFactory
		ConflictRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
