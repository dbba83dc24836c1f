package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrAdjustStockCommandIsNotConstructed = errors.New(
		"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
	)
	ErrReceiveStockCommandIsNotConstructed = errors.New(
		"ReceiveStockCommand must be created via NewReceiveStockCommand constructor",
	)
)

// AdjustStockCommand books a signed manual correction, e.g. after a stocktake.
type AdjustStockCommand struct { //nolint:recvcheck //using for validation
	materialID kernel.UUID
	delta      decimal.Decimal
	reason     string

	guard guard.ConstructorGuard
}

func NewAdjustStockCommand(materialID kernel.UUID, delta decimal.Decimal, reason string) (AdjustStockCommand, error) {
	var errList []error
	if err := materialID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if delta.IsZero() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("delta", errors.New("adjustment delta is zero")))
	}
	if strings.TrimSpace(reason) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("reason"))
	}
	if err := errors.Join(errList...); err != nil {
		return AdjustStockCommand{}, err
	}

	return AdjustStockCommand{
		materialID: materialID,
		delta:      delta,
		reason:     strings.TrimSpace(reason),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

func (c AdjustStockCommand) MaterialID() kernel.UUID { return c.materialID }
func (c AdjustStockCommand) Delta() decimal.Decimal  { return c.delta }
func (c AdjustStockCommand) Reason() string          { return c.reason }

// ReceiveStockCommand books a supplier delivery.
type ReceiveStockCommand struct { //nolint:recvcheck //using for validation
	materialID kernel.UUID
	quantity   decimal.Decimal
	reason     string

	guard guard.ConstructorGuard
}

func NewReceiveStockCommand(materialID kernel.UUID, quantity decimal.Decimal, reason string) (ReceiveStockCommand, error) {
	var errList []error
	if err := materialID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if !quantity.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("quantity is not greater than 0")))
	}
	if strings.TrimSpace(reason) == "" {
		reason = "supplier receipt"
	}
	if err := errors.Join(errList...); err != nil {
		return ReceiveStockCommand{}, err
	}

	return ReceiveStockCommand{
		materialID: materialID,
		quantity:   quantity,
		reason:     strings.TrimSpace(reason),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReceiveStockCommand) Validate() error {
	return c.guard.Validate(ErrReceiveStockCommandIsNotConstructed)
}

func (c ReceiveStockCommand) MaterialID() kernel.UUID   { return c.materialID }
func (c ReceiveStockCommand) Quantity() decimal.Decimal { return c.quantity }
func (c ReceiveStockCommand) Reason() string            { return c.reason }
