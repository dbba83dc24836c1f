package ledger

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	ErrWriteFailure      = errors.New("ledger write failed")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// WriteFailure wraps any store error raised while booking a movement.
type WriteFailure struct {
	MaterialID kernel.UUID
	Type       MovementType
	OrderRef   *kernel.UUID
	Cause      error
}

func NewWriteFailure(materialID kernel.UUID, typ MovementType, orderRef *kernel.UUID, cause error) *WriteFailure {
	return &WriteFailure{MaterialID: materialID, Type: typ, OrderRef: orderRef, Cause: cause}
}

func (e *WriteFailure) Error() string {
	ref := "-"
	if e.OrderRef != nil {
		ref = e.OrderRef.String()
	}
	return fmt.Sprintf("%s: %s movement on material %s (order %s): %v", ErrWriteFailure, e.Type, e.MaterialID, ref, e.Cause)
}

// Unwrap exposes both the sentinel and the store error to errors.Is.
func (e *WriteFailure) Unwrap() []error {
	return []error{ErrWriteFailure, e.Cause}
}

// InsufficientStockError is raised in strict mode when a deduction would
// drive a balance negative.
type InsufficientStockError struct {
	MaterialID kernel.UUID
	Required   decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: material %s requires %s, %s available", ErrInsufficientStock, e.MaterialID, e.Required, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
