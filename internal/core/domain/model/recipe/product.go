package recipe

import (
	"fmt"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Product is a sellable item. Its stock counter is master data for products
// sold without a recipe and is never moved by the engine.
type Product struct {
	id            kernel.UUID
	name          string
	price         decimal.Decimal
	stockQuantity int
}

func NewProduct(id kernel.UUID, name string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("product name")
	}
	if price.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	return &Product{id: id, name: name, price: price, stockQuantity: stockQuantity}, nil
}

func (p *Product) ID() kernel.UUID        { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) StockQuantity() int     { return p.stockQuantity }
