package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrMovementIsNotConstructed = errors.New("Movement must be created via NewMovement constructor")

// QuantityScale is the number of decimals balances and movement rows are
// stored with. Finer quantities are refused so that the stored balance always
// equals the sum of the stored rows.
const QuantityScale = 3

// CheckScale rejects quantities with more than QuantityScale decimals.
func CheckScale(field string, q decimal.Decimal) error {
	if !q.Equal(q.Round(QuantityScale)) {
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("%s has more than %d decimals", q, QuantityScale))
	}
	return nil
}

type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementReturn     MovementType = "RETURN"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

func ParseMovementType(s string) (MovementType, error) {
	switch t := MovementType(strings.ToUpper(s)); t {
	case MovementIn, MovementOut, MovementReturn, MovementAdjustment:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("movement type", fmt.Errorf("%q is not a valid type", s))
	}
}

// Movement is one immutable ledger row.
type Movement struct {
	id            kernel.UUID
	rawMaterialID kernel.UUID
	typ           MovementType
	quantity      decimal.Decimal
	balanceAfter  decimal.Decimal
	reason        string
	orderID       *kernel.UUID
	createdAt     time.Time

	isConstructed bool
}

// NewMovement builds a row that has not been booked yet. The sign of quantity
// must agree with typ.
func NewMovement(
	id, rawMaterialID kernel.UUID,
	typ MovementType,
	quantity decimal.Decimal,
	reason string,
	orderID *kernel.UUID,
	now time.Time,
) (*Movement, error) {
	if err := errors.Join(id.Validate(), rawMaterialID.Validate()); err != nil {
		return nil, err
	}
	if err := checkSign(typ, quantity); err != nil {
		return nil, err
	}
	if err := CheckScale("quantity", quantity); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}

	return &Movement{
		id:            id,
		rawMaterialID: rawMaterialID,
		typ:           typ,
		quantity:      quantity,
		reason:        reason,
		orderID:       orderID,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

func RestoreMovement(
	id, rawMaterialID kernel.UUID,
	typ MovementType,
	quantity, balanceAfter decimal.Decimal,
	reason string,
	orderID *kernel.UUID,
	createdAt time.Time,
) *Movement {
	return &Movement{
		id:            id,
		rawMaterialID: rawMaterialID,
		typ:           typ,
		quantity:      quantity,
		balanceAfter:  balanceAfter,
		reason:        reason,
		orderID:       orderID,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

func (m *Movement) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMovementIsNotConstructed
	}
	return nil
}

func (m *Movement) ID() kernel.UUID               { return m.id }
func (m *Movement) RawMaterialID() kernel.UUID    { return m.rawMaterialID }
func (m *Movement) Type() MovementType            { return m.typ }
func (m *Movement) Quantity() decimal.Decimal     { return m.quantity }
func (m *Movement) BalanceAfter() decimal.Decimal { return m.balanceAfter }
func (m *Movement) Reason() string                { return m.reason }
func (m *Movement) OrderID() *kernel.UUID         { return m.orderID }
func (m *Movement) CreatedAt() time.Time          { return m.createdAt }

// Booked returns a copy carrying the balance the store reported after
// applying the row.
func (m *Movement) Booked(balanceAfter decimal.Decimal) *Movement {
	c := *m
	c.balanceAfter = balanceAfter
	return &c
}

func checkSign(typ MovementType, quantity decimal.Decimal) error {
	switch typ {
	case MovementOut:
		if !quantity.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("OUT quantity %s is not negative", quantity))
		}
	case MovementIn, MovementReturn:
		if !quantity.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%s quantity %s is not positive", typ, quantity))
		}
	case MovementAdjustment:
		if quantity.IsZero() {
			return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("adjustment delta is zero"))
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("movement type", fmt.Errorf("%q is not a valid type", typ))
	}
	return nil
}
