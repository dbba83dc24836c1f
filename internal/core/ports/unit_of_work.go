package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh unit of work per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction shared by every repository it
// returns. Callers Begin, defer Rollback and Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback after Commit is harmless and returns an error the caller ignores.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	MaterialRepository() MaterialRepository
	RecipeRepository() RecipeRepository
	LedgerRepository() LedgerRepository
	ConflictRepository() ConflictRepository
}
