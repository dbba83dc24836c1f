package queries

import (
	"errors"

	"backoffice/internal/pkg/guard"
)

var ErrGetLowStockReportQueryIsNotConstructed = errors.New(
	"GetLowStockReportQuery must be created via NewGetLowStockReportQuery constructor",
)

// GetLowStockReportQuery lists every material whose level is LOW or CRITICAL,
// most urgent first.
type GetLowStockReportQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLowStockReportQuery() GetLowStockReportQuery {
	return GetLowStockReportQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLowStockReportQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockReportQueryIsNotConstructed)
}
