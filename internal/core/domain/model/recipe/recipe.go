package recipe

import (
	"errors"
	"fmt"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeMaterial Type = "MATERIAL"
	TypeLabor    Type = "LABOR"
)

func ParseType(s string) (Type, error) {
	switch Type(strings.ToUpper(s)) {
	case TypeMaterial:
		return TypeMaterial, nil
	case TypeLabor:
		return TypeLabor, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("recipe type", fmt.Errorf("%q is not a valid type", s))
	}
}

// Recipe is one BOM row of a product.
type Recipe struct {
	id              kernel.UUID
	productID       kernel.UUID
	rawMaterialID   *kernel.UUID
	typ             Type
	quantityPerUnit decimal.Decimal
	unit            string
	optionKey       string
}

// NewRecipe validates a BOM row. MATERIAL rows need a raw material, LABOR
// rows must not reference one.
func NewRecipe(
	id, productID kernel.UUID,
	rawMaterialID *kernel.UUID,
	typ Type,
	quantityPerUnit decimal.Decimal,
	unit, optionKey string,
) (*Recipe, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	switch typ {
	case TypeMaterial:
		if rawMaterialID == nil {
			return nil, errs.NewValueIsRequiredError("raw material id")
		}
		if err := rawMaterialID.Validate(); err != nil {
			return nil, err
		}
	case TypeLabor:
		if rawMaterialID != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("raw material id", errors.New("labor rows reference no material"))
		}
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("recipe type", fmt.Errorf("%q is not a valid type", typ))
	}
	if !quantityPerUnit.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity per unit", fmt.Errorf("%s is not greater than 0", quantityPerUnit))
	}
	if err := ledger.CheckScale("quantity per unit", quantityPerUnit); err != nil {
		return nil, err
	}

	return &Recipe{
		id:              id,
		productID:       productID,
		rawMaterialID:   rawMaterialID,
		typ:             typ,
		quantityPerUnit: quantityPerUnit,
		unit:            unit,
		optionKey:       strings.TrimSpace(optionKey),
	}, nil
}

func (r *Recipe) ID() kernel.UUID                  { return r.id }
func (r *Recipe) ProductID() kernel.UUID           { return r.productID }
func (r *Recipe) RawMaterialID() *kernel.UUID      { return r.rawMaterialID }
func (r *Recipe) Type() Type                       { return r.typ }
func (r *Recipe) QuantityPerUnit() decimal.Decimal { return r.quantityPerUnit }
func (r *Recipe) Unit() string                     { return r.unit }
func (r *Recipe) OptionKey() string                { return r.optionKey }

// IsOptional reports whether the row only applies to a personalization key.
func (r *Recipe) IsOptional() bool {
	return r.optionKey != ""
}
