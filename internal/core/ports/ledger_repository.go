package ports

import (
	"context"

	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/material"
)

// AppendOptions tunes a single ledger append.
type AppendOptions struct {
	// RequireNonNegative refuses the movement with ledger.InsufficientStockError
	// when it would leave the balance below zero.
	RequireNonNegative bool
}

// LedgerRepository is the only writer of raw material balances.
type LedgerRepository interface {
	// Append applies the movement's signed quantity to the material balance
	// with a single atomic increment and inserts the movement row with the
	// resulting balance. It returns the material as stored after the update.
	// A missing material yields errs.ObjectNotFoundError.
	Append(ctx context.Context, movement *ledger.Movement, opts AppendOptions) (*material.RawMaterial, error)
}
