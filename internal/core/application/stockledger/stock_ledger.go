// Package stockledger is the single choke point through which raw material
// balances change. Every booking is one atomic increment plus one movement row,
// executed through the LedgerRepository of the caller's unit of work.
package stockledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/ports"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Posting is a booked movement and the material balance it produced.
type Posting struct {
	Movement *ledger.Movement
	Material *material.RawMaterial
}

// StockLedger books deductions, restorations, adjustments and receipts.
//
// In strict mode deductions that would leave a negative balance fail with
// ledger.InsufficientStockError; otherwise balances may go negative.
//
// Example:
//
//	stock := stockledger.New(uow.LedgerRepository(), cfg.StrictStock)
//	posting, err := stock.Deduct(ctx, materialID, qty, "order:42 confirm", &orderID)
type StockLedger struct {
	repo   ports.LedgerRepository
	strict bool
	now    func() time.Time
}

func New(repo ports.LedgerRepository, strict bool) *StockLedger {
	return &StockLedger{repo: repo, strict: strict, now: time.Now}
}

// WithClock replaces the time source used for movement timestamps.
func (l *StockLedger) WithClock(now func() time.Time) *StockLedger {
	l.now = now
	return l
}

// Deduct books an OUT movement of -qty.
func (l *StockLedger) Deduct(
	ctx context.Context, materialID kernel.UUID, qty decimal.Decimal, reason string, orderRef *kernel.UUID,
) (Posting, error) {
	if err := requirePositive(qty); err != nil {
		return Posting{}, err
	}
	return l.book(ctx, materialID, ledger.MovementOut, qty.Neg(), reason, orderRef, l.strict)
}

// Restore books a RETURN movement of +qty.
func (l *StockLedger) Restore(
	ctx context.Context, materialID kernel.UUID, qty decimal.Decimal, reason string, orderRef *kernel.UUID,
) (Posting, error) {
	if err := requirePositive(qty); err != nil {
		return Posting{}, err
	}
	return l.book(ctx, materialID, ledger.MovementReturn, qty, reason, orderRef, false)
}

// Adjust books an ADJUSTMENT movement carrying the signed delta.
func (l *StockLedger) Adjust(ctx context.Context, materialID kernel.UUID, delta decimal.Decimal, reason string) (Posting, error) {
	if delta.IsZero() {
		return Posting{}, errs.NewValueIsInvalidErrorWithCause("delta", errors.New("adjustment delta is zero"))
	}
	if err := ledger.CheckScale("delta", delta); err != nil {
		return Posting{}, err
	}
	return l.book(ctx, materialID, ledger.MovementAdjustment, delta, reason, nil, false)
}

// Receive books an IN movement of +qty for a supplier delivery.
func (l *StockLedger) Receive(ctx context.Context, materialID kernel.UUID, qty decimal.Decimal, reason string) (Posting, error) {
	if err := requirePositive(qty); err != nil {
		return Posting{}, err
	}
	return l.book(ctx, materialID, ledger.MovementIn, qty, reason, nil, false)
}

func (l *StockLedger) book(
	ctx context.Context,
	materialID kernel.UUID,
	typ ledger.MovementType,
	signed decimal.Decimal,
	reason string,
	orderRef *kernel.UUID,
	requireNonNegative bool,
) (Posting, error) {
	movement, err := ledger.NewMovement(kernel.NewUUID(), materialID, typ, signed, reason, orderRef, l.now())
	if err != nil {
		return Posting{}, err
	}

	updated, err := l.repo.Append(ctx, movement, ports.AppendOptions{RequireNonNegative: requireNonNegative})
	if err != nil {
		var insufficient *ledger.InsufficientStockError
		if errors.As(err, &insufficient) {
			return Posting{}, err
		}
		return Posting{}, ledger.NewWriteFailure(materialID, typ, orderRef, err)
	}

	return Posting{Movement: movement.Booked(updated.StockQuantity()), Material: updated}, nil
}

func requirePositive(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s is not greater than 0", qty))
	}
	return ledger.CheckScale("quantity", qty)
}
