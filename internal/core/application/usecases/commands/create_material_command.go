package commands

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateMaterialCommandIsNotConstructed = errors.New(
	"CreateMaterialCommand must be created via NewCreateMaterialCommand constructor",
)

// CreateMaterialCommand registers a raw material. A positive opening stock is
// booked as an IN movement in the same transaction.
type CreateMaterialCommand struct { //nolint:recvcheck //using for validation
	materialID   kernel.UUID
	name         string
	unit         string
	minStock     decimal.Decimal
	maxStock     decimal.Decimal
	unitPrice    decimal.Decimal
	supplierID   *kernel.UUID
	openingStock decimal.Decimal

	guard guard.ConstructorGuard
}

func NewCreateMaterialCommand(
	materialID kernel.UUID,
	name, unit string,
	minStock, maxStock, unitPrice decimal.Decimal,
	supplierID *kernel.UUID,
	openingStock decimal.Decimal,
) (CreateMaterialCommand, error) {
	var errList []error
	if err := materialID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if openingStock.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("opening stock", fmt.Errorf("%s is negative", openingStock)))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateMaterialCommand{}, err
	}

	return CreateMaterialCommand{
		materialID:   materialID,
		name:         name,
		unit:         unit,
		minStock:     minStock,
		maxStock:     maxStock,
		unitPrice:    unitPrice,
		supplierID:   supplierID,
		openingStock: openingStock,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateMaterialCommand) Validate() error {
	return c.guard.Validate(ErrCreateMaterialCommandIsNotConstructed)
}

func (c CreateMaterialCommand) MaterialID() kernel.UUID       { return c.materialID }
func (c CreateMaterialCommand) Name() string                  { return c.name }
func (c CreateMaterialCommand) Unit() string                  { return c.unit }
func (c CreateMaterialCommand) MinStock() decimal.Decimal     { return c.minStock }
func (c CreateMaterialCommand) MaxStock() decimal.Decimal     { return c.maxStock }
func (c CreateMaterialCommand) UnitPrice() decimal.Decimal    { return c.unitPrice }
func (c CreateMaterialCommand) SupplierID() *kernel.UUID      { return c.supplierID }
func (c CreateMaterialCommand) OpeningStock() decimal.Decimal { return c.openingStock }
