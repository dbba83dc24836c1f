package order

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Field names shared by snapshots, change sets and conflict records.
const (
	FieldStatus          = "status"
	FieldTotal           = "total"
	FieldReceived        = "received"
	FieldDiscount        = "discount"
	FieldLaborCost       = "labor_cost"
	FieldNetProfit       = "net_profit"
	FieldCustomerName    = "customer_name"
	FieldCustomerPhone   = "customer_phone"
	FieldCustomerEmail   = "customer_email"
	FieldShippingAddress = "shipping_address"
	FieldShippingMethod  = "shipping_method"
	FieldTrackingCode    = "tracking_code"
	FieldNotes           = "notes"
	FieldStockCommitted  = "stock_committed"
)

// Money groups the monetary fields of an order.
type Money struct {
	Total     decimal.Decimal
	Received  decimal.Decimal
	Discount  decimal.Decimal
	LaborCost decimal.Decimal
}

// NetProfit is total - discount - labor cost.
func (m Money) NetProfit() decimal.Decimal {
	return m.Total.Sub(m.Discount).Sub(m.LaborCost)
}

func (m Money) Validate() error {
	var errList []error
	for name, v := range map[string]decimal.Decimal{
		FieldTotal:     m.Total,
		FieldReceived:  m.Received,
		FieldDiscount:  m.Discount,
		FieldLaborCost: m.LaborCost,
	} {
		if v.IsNegative() {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v)))
		}
	}
	return errors.Join(errList...)
}

type Customer struct {
	Name  string
	Phone string
	Email string
}

type Shipping struct {
	Address      string
	Method       string
	TrackingCode string
}

// Order is the aggregate root of a customer sale.
//
// Order follows these invariants:
//   - Status is always one of the eight lifecycle states and only moves along
//     the successor table
//   - stockCommitted is true exactly while the order holds a stock deduction
//   - Items are frozen outside PENDING
//   - version increases by one on every persisted change
type Order struct {
	id             kernel.UUID
	status         Status
	items          []*Item
	money          Money
	customer       Customer
	shipping       Shipping
	notes          string
	stockCommitted bool
	version        int64
	createdAt      time.Time
	updatedAt      time.Time

	isConstructed bool
}

// NewOrder creates a PENDING order with no stock committed.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), customer, shipping, money, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, customer Customer, shipping Shipping, money Money, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(customer.Name) == "" {
		return nil, errs.NewValueIsRequiredError(FieldCustomerName)
	}
	if err := money.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		status:        Pending,
		money:         money,
		customer:      customer,
		shipping:      shipping,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an order loaded from storage without re-running
// creation rules.
func RestoreOrder(
	id kernel.UUID,
	status Status,
	items []*Item,
	money Money,
	customer Customer,
	shipping Shipping,
	notes string,
	stockCommitted bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:             id,
		status:         status,
		items:          items,
		money:          money,
		customer:       customer,
		shipping:       shipping,
		notes:          notes,
		stockCommitted: stockCommitted,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Items() []*Item             { return append([]*Item(nil), o.items...) }
func (o *Order) Money() Money               { return o.money }
func (o *Order) NetProfit() decimal.Decimal { return o.money.NetProfit() }
func (o *Order) Customer() Customer         { return o.customer }
func (o *Order) Shipping() Shipping         { return o.shipping }
func (o *Order) Notes() string              { return o.notes }
func (o *Order) StockCommitted() bool       { return o.stockCommitted }
func (o *Order) Version() int64             { return o.version }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }

// AddItem appends a product line. Only PENDING orders accept items.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if o.status != Pending {
		return ErrItemsAreFrozen
	}
	o.items = append(o.items, item)
	return nil
}

// Transition moves the order to target and reports the stock effect the
// caller must apply in the same unit of work.
//
// Business rules:
//   - target must be a direct successor of the current status
//   - PENDING -> CONFIRMED deducts stock and marks it committed
//   - entering CANCELLED or REFUNDED while stock is committed restores it
//
// On error the order is left unchanged.
func (o *Order) Transition(target Status, now time.Time) (StockEffect, error) {
	if !o.status.CanTransitionTo(target) {
		return EffectNone, NewInvalidTransitionError(o.id, o.status, target)
	}

	effect := EffectNone
	switch {
	case o.status == Pending && target == Confirmed:
		effect = EffectDeduct
	case target.releasesStock() && o.stockCommitted:
		effect = EffectRestore
	}

	o.applyStatus(target, effect, now)
	return effect, nil
}

// Revert undoes a change that moved the order from previous to expected with
// the given forward effect. It bypasses the successor table and returns the
// inverse effect the caller must apply.
//
// Reverting is rejected when the order is terminal or when its status is no
// longer expected.
func (o *Order) Revert(expected, previous Status, forward StockEffect, now time.Time) (StockEffect, error) {
	if o.status.IsTerminal() {
		return EffectNone, NewInvalidTransitionError(o.id, o.status, previous)
	}
	if o.status != expected {
		return EffectNone, fmt.Errorf("%w: expected %s, found %s", ErrStaleRevert, expected, o.status)
	}
	if err := previous.Validate(); err != nil {
		return EffectNone, err
	}

	effect := forward.Inverse()
	o.applyStatus(previous, effect, now)
	return effect, nil
}

func (o *Order) applyStatus(target Status, effect StockEffect, now time.Time) {
	switch effect {
	case EffectDeduct:
		o.stockCommitted = true
	case EffectRestore:
		o.stockCommitted = false
	case EffectNone:
	}
	o.status = target
	o.updatedAt = now
}

// EditableFields lists the fields UpdateDetails accepts.
func EditableFields() []string {
	return []string{
		FieldTotal, FieldReceived, FieldDiscount, FieldLaborCost,
		FieldCustomerName, FieldCustomerPhone, FieldCustomerEmail,
		FieldShippingAddress, FieldShippingMethod, FieldTrackingCode,
		FieldNotes,
	}
}

// UpdateDetails applies a change set of customer, shipping, note and money
// fields given in canonical string form. net_profit is recomputed. Either all
// changes apply or none do.
func (o *Order) UpdateDetails(changes map[string]string, now time.Time) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsFinal, o.status)
	}
	if len(changes) == 0 {
		return errs.NewValueIsRequiredError("changes")
	}

	money := o.money
	customer := o.customer
	shipping := o.shipping
	notes := o.notes

	var errList []error
	for field, value := range changes {
		switch field {
		case FieldTotal:
			errList = append(errList, parseMoney(field, value, &money.Total))
		case FieldReceived:
			errList = append(errList, parseMoney(field, value, &money.Received))
		case FieldDiscount:
			errList = append(errList, parseMoney(field, value, &money.Discount))
		case FieldLaborCost:
			errList = append(errList, parseMoney(field, value, &money.LaborCost))
		case FieldCustomerName:
			if strings.TrimSpace(value) == "" {
				errList = append(errList, errs.NewValueIsRequiredError(field))
			}
			customer.Name = value
		case FieldCustomerPhone:
			customer.Phone = value
		case FieldCustomerEmail:
			customer.Email = value
		case FieldShippingAddress:
			shipping.Address = value
		case FieldShippingMethod:
			shipping.Method = value
		case FieldTrackingCode:
			shipping.TrackingCode = value
		case FieldNotes:
			notes = value
		default:
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(field, errors.New("field is not editable")))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	if err := money.Validate(); err != nil {
		return err
	}

	o.money = money
	o.customer = customer
	o.shipping = shipping
	o.notes = notes
	o.updatedAt = now
	return nil
}

// Snapshot renders every comparable field for conflict detection.
func (o *Order) Snapshot() conflict.Snapshot {
	return conflict.NewSnapshot(o.version, map[string]string{
		FieldStatus:          o.status.String(),
		FieldTotal:           o.money.Total.String(),
		FieldReceived:        o.money.Received.String(),
		FieldDiscount:        o.money.Discount.String(),
		FieldLaborCost:       o.money.LaborCost.String(),
		FieldNetProfit:       o.money.NetProfit().String(),
		FieldCustomerName:    o.customer.Name,
		FieldCustomerPhone:   o.customer.Phone,
		FieldCustomerEmail:   o.customer.Email,
		FieldShippingAddress: o.shipping.Address,
		FieldShippingMethod:  o.shipping.Method,
		FieldTrackingCode:    o.shipping.TrackingCode,
		FieldNotes:           o.notes,
		FieldStockCommitted:  strconv.FormatBool(o.stockCommitted),
	})
}

// MarkPersisted records the version the store assigned to the latest write.
func (o *Order) MarkPersisted(version int64) {
	o.version = version
}

func parseMoney(field, value string, dst *decimal.Decimal) error {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	*dst = d
	return nil
}
