package material

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrRawMaterialIsNotConstructed = errors.New("RawMaterial must be created via NewRawMaterial constructor")

const (
	FieldName          = "name"
	FieldUnit          = "unit"
	FieldStockQuantity = "stock_quantity"
	FieldMinStock      = "min_stock_quantity"
	FieldMaxStock      = "max_stock_quantity"
	FieldUnitPrice     = "unit_price"
	FieldSupplierID    = "supplier_id"
)

// RawMaterial is a stocked input consumed by product recipes.
//
// Invariants:
//   - min stock is non-negative
//   - a positive max stock is never below min stock
//   - stock quantity may go negative (oversold) and is never written here
type RawMaterial struct {
	id            kernel.UUID
	name          string
	unit          string
	stockQuantity decimal.Decimal
	minStock      decimal.Decimal
	maxStock      decimal.Decimal
	unitPrice     decimal.Decimal
	supplierID    *kernel.UUID
	version       int64
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewRawMaterial creates a material with a zero balance. Opening stock is
// booked through the ledger as a receipt.
func NewRawMaterial(
	id kernel.UUID,
	name, unit string,
	minStock, maxStock, unitPrice decimal.Decimal,
	supplierID *kernel.UUID,
	now time.Time,
) (*RawMaterial, error) {
	m := &RawMaterial{
		id:            id,
		name:          name,
		unit:          unit,
		minStock:      minStock,
		maxStock:      maxStock,
		unitPrice:     unitPrice,
		supplierID:    supplierID,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	if err := errors.Join(id.Validate(), m.check()); err != nil {
		return nil, err
	}
	return m, nil
}

func RestoreRawMaterial(
	id kernel.UUID,
	name, unit string,
	stockQuantity, minStock, maxStock, unitPrice decimal.Decimal,
	supplierID *kernel.UUID,
	version int64,
	createdAt, updatedAt time.Time,
) *RawMaterial {
	return &RawMaterial{
		id:            id,
		name:          name,
		unit:          unit,
		stockQuantity: stockQuantity,
		minStock:      minStock,
		maxStock:      maxStock,
		unitPrice:     unitPrice,
		supplierID:    supplierID,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
}

func (m *RawMaterial) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrRawMaterialIsNotConstructed
	}
	return nil
}

func (m *RawMaterial) ID() kernel.UUID                { return m.id }
func (m *RawMaterial) Name() string                   { return m.name }
func (m *RawMaterial) Unit() string                   { return m.unit }
func (m *RawMaterial) StockQuantity() decimal.Decimal { return m.stockQuantity }
func (m *RawMaterial) MinStock() decimal.Decimal      { return m.minStock }
func (m *RawMaterial) MaxStock() decimal.Decimal      { return m.maxStock }
func (m *RawMaterial) UnitPrice() decimal.Decimal     { return m.unitPrice }
func (m *RawMaterial) SupplierID() *kernel.UUID       { return m.supplierID }
func (m *RawMaterial) Version() int64                 { return m.version }
func (m *RawMaterial) CreatedAt() time.Time           { return m.createdAt }
func (m *RawMaterial) UpdatedAt() time.Time           { return m.updatedAt }

// EditableFields lists the fields UpdateDetails accepts.
func EditableFields() []string {
	return []string{FieldName, FieldUnit, FieldMinStock, FieldMaxStock, FieldUnitPrice, FieldSupplierID}
}

// UpdateDetails applies a change set given in canonical string form. The
// balance is not writable here. Either all changes apply or none do.
func (m *RawMaterial) UpdateDetails(changes map[string]string, now time.Time) error {
	if len(changes) == 0 {
		return errs.NewValueIsRequiredError("changes")
	}

	next := *m
	var errList []error
	for field, value := range changes {
		switch field {
		case FieldName:
			next.name = value
		case FieldUnit:
			next.unit = value
		case FieldMinStock:
			errList = append(errList, parseDecimal(field, value, &next.minStock))
		case FieldMaxStock:
			errList = append(errList, parseDecimal(field, value, &next.maxStock))
		case FieldUnitPrice:
			errList = append(errList, parseDecimal(field, value, &next.unitPrice))
		case FieldSupplierID:
			if strings.TrimSpace(value) == "" {
				next.supplierID = nil
				continue
			}
			id, err := kernel.UUIDFromString(value)
			if err != nil {
				errList = append(errList, errs.NewValueIsInvalidErrorWithCause(field, err))
				continue
			}
			next.supplierID = &id
		case FieldStockQuantity:
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(field,
				errors.New("balance only changes through stock movements")))
		default:
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(field, errors.New("field is not editable")))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	if err := next.check(); err != nil {
		return err
	}

	next.updatedAt = now
	*m = next
	return nil
}

// Snapshot renders every comparable field for conflict detection.
func (m *RawMaterial) Snapshot() conflict.Snapshot {
	supplier := ""
	if m.supplierID != nil {
		supplier = m.supplierID.String()
	}
	return conflict.NewSnapshot(m.version, map[string]string{
		FieldName:          m.name,
		FieldUnit:          m.unit,
		FieldStockQuantity: m.stockQuantity.String(),
		FieldMinStock:      m.minStock.String(),
		FieldMaxStock:      m.maxStock.String(),
		FieldUnitPrice:     m.unitPrice.String(),
		FieldSupplierID:    supplier,
	})
}

// MarkPersisted records the version the store assigned to the latest write.
func (m *RawMaterial) MarkPersisted(version int64) {
	m.version = version
}

func (m *RawMaterial) check() error {
	var errList []error
	if strings.TrimSpace(m.name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError(FieldName))
	}
	if strings.TrimSpace(m.unit) == "" {
		errList = append(errList, errs.NewValueIsRequiredError(FieldUnit))
	}
	if m.minStock.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(FieldMinStock, fmt.Errorf("%s is negative", m.minStock)))
	}
	if m.maxStock.IsPositive() && m.maxStock.LessThan(m.minStock) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(FieldMaxStock,
			fmt.Errorf("%s is below min stock %s", m.maxStock, m.minStock)))
	}
	if m.unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(FieldUnitPrice, fmt.Errorf("%s is negative", m.unitPrice)))
	}
	return errors.Join(errList...)
}

func parseDecimal(field, value string, dst *decimal.Decimal) error {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	*dst = d
	return nil
}
