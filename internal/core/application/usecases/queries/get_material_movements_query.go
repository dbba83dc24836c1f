package queries

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	DefaultMovementsLimit = 50
	MaxMovementsLimit     = 500
)

var ErrGetMaterialMovementsQueryIsNotConstructed = errors.New(
	"GetMaterialMovementsQuery must be created via NewGetMaterialMovementsQuery constructor",
)

// GetMaterialMovementsQuery pages through a material's ledger, newest first.
// A zero page or limit takes the default.
//
// Example:
//
//	query, err := NewGetMaterialMovementsQuery(materialID, 1, 20)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type GetMaterialMovementsQuery struct { //nolint:recvcheck //using for validation
	materialID kernel.UUID
	page       int
	limit      int

	guard guard.ConstructorGuard
}

func NewGetMaterialMovementsQuery(materialID kernel.UUID, page, limit int) (GetMaterialMovementsQuery, error) {
	q := GetMaterialMovementsQuery{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		materialID.Validate(),
		q.setPage(page),
		q.setLimit(limit),
	); err != nil {
		return GetMaterialMovementsQuery{}, err
	}
	q.materialID = materialID
	return q, nil
}

func (q GetMaterialMovementsQuery) Validate() error {
	return q.guard.Validate(ErrGetMaterialMovementsQueryIsNotConstructed)
}

func (q GetMaterialMovementsQuery) MaterialID() kernel.UUID { return q.materialID }
func (q GetMaterialMovementsQuery) Page() int               { return q.page }
func (q GetMaterialMovementsQuery) Limit() int              { return q.limit }
func (q GetMaterialMovementsQuery) Offset() int             { return (q.page - 1) * q.limit }

func (q *GetMaterialMovementsQuery) setPage(page int) error {
	switch {
	case page == 0:
		q.page = 1
	case page < 0:
		return errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	default:
		q.page = page
	}
	return nil
}

func (q *GetMaterialMovementsQuery) setLimit(limit int) error {
	switch {
	case limit == 0:
		q.limit = DefaultMovementsLimit
	case limit < 0 || limit > MaxMovementsLimit:
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxMovementsLimit)
	default:
		q.limit = limit
	}
	return nil
}

type MovementView struct {
	ID           kernel.UUID
	Type         string
	Quantity     decimal.Decimal
	BalanceAfter decimal.Decimal
	Reason       string
	OrderID      *kernel.UUID
	CreatedAt    time.Time
}

type GetMaterialMovementsQueryResponse struct {
	MaterialID kernel.UUID
	Page       int
	Limit      int
	Total      int64
	Items      []MovementView
}
