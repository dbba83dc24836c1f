package order

import (
	"errors"
	"fmt"
	"maps"
	"sort"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one ordered product line. Personalization keys select optional
// recipe rows when the order is confirmed.
type Item struct {
	id              kernel.UUID
	productID       kernel.UUID
	quantity        int
	unitPrice       decimal.Decimal
	personalization map[string]any

	isConstructed bool
}

func NewItem(id, productID kernel.UUID, quantity int, unitPrice decimal.Decimal, personalization map[string]any) (*Item, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice))
	}

	return &Item{
		id:              id,
		productID:       productID,
		quantity:        quantity,
		unitPrice:       unitPrice,
		personalization: maps.Clone(personalization),
		isConstructed:   true,
	}, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID            { return i.id }
func (i *Item) ProductID() kernel.UUID     { return i.productID }
func (i *Item) Quantity() int              { return i.quantity }
func (i *Item) UnitPrice() decimal.Decimal { return i.unitPrice }
func (i *Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
func (i *Item) Personalization() map[string]any {
	return maps.Clone(i.personalization)
}

// OptionKeys returns the personalization keys in sorted order.
func (i *Item) OptionKeys() []string {
	keys := make([]string, 0, len(i.personalization))
	for k := range i.personalization {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
