package queries

import (
	"errors"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetLedgerDiscrepanciesQueryIsNotConstructed = errors.New(
	"GetLedgerDiscrepanciesQuery must be created via NewGetLedgerDiscrepanciesQuery constructor",
)

// GetLedgerDiscrepanciesQuery audits the conservation law: a material's
// stored balance must equal the sum of its movements.
type GetLedgerDiscrepanciesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLedgerDiscrepanciesQuery() GetLedgerDiscrepanciesQuery {
	return GetLedgerDiscrepanciesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLedgerDiscrepanciesQuery) Validate() error {
	return q.guard.Validate(ErrGetLedgerDiscrepanciesQueryIsNotConstructed)
}

// DiscrepancyView is a material whose balance drifted from its ledger.
// Difference is StockQuantity - LedgerSum.
type DiscrepancyView struct {
	MaterialID    kernel.UUID
	Name          string
	StockQuantity decimal.Decimal
	LedgerSum     decimal.Decimal
	Difference    decimal.Decimal
}
