package queries_test

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MaterialQueriesTestSuite struct {
	QueriesTestSuite
}

func (suite *MaterialQueriesTestSuite) TestStockLevel_ClassifiesAndSuggests() {
	m := suite.seedMaterial("Resin", 100, 119)
	handler, err := queries.NewGetStockLevelQueryHandler(suite.db)
	suite.Require().NoError(err)

	query, err := queries.NewGetStockLevelQuery(m.ID())
	suite.Require().NoError(err)

	view, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(material.LevelLow, view.Level)
	suite.True(decimal.NewFromInt(81).Equal(view.SuggestedReorder))
	suite.Equal(m.Version(), view.Version)
	suite.Equal("119", view.Snapshot.Fields[material.FieldStockQuantity])
}

func (suite *MaterialQueriesTestSuite) TestStockLevel_UnknownMaterial() {
	handler, err := queries.NewGetStockLevelQueryHandler(suite.db)
	suite.Require().NoError(err)
	query, err := queries.NewGetStockLevelQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *MaterialQueriesTestSuite) TestLowStockReport_CriticalFirstThenByName() {
	suite.seedMaterial("Beads", 100, 110)   // LOW
	suite.seedMaterial("Cord", 100, 120)    // NORMAL
	suite.seedMaterial("Dye", 100, 100)     // CRITICAL
	suite.seedMaterial("Alum", 10, -2)      // CRITICAL, oversold
	suite.seedMaterial("Thread", 100, 1000) // NORMAL

	handler, err := queries.NewGetLowStockReportQueryHandler(suite.db)
	suite.Require().NoError(err)

	report, err := handler.Handle(context.Background(), queries.NewGetLowStockReportQuery())

	suite.Require().NoError(err)
	suite.Require().Len(report, 3)
	suite.Equal("Alum", report[0].Name)
	suite.Equal(material.LevelCritical, report[0].Level)
	suite.True(decimal.NewFromInt(22).Equal(report[0].SuggestedReorder))
	suite.Equal("Dye", report[1].Name)
	suite.Equal("Beads", report[2].Name)
	suite.Equal(material.LevelLow, report[2].Level)
}

func (suite *MaterialQueriesTestSuite) TestMovements_PagesNewestFirst() {
	m := suite.seedMaterial("Wax", 5, 0)
	orderID := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)
	suite.book(m.ID(), ledger.MovementIn, 50, nil, base)
	suite.book(m.ID(), ledger.MovementOut, -6, &orderID, base.Add(time.Minute))
	suite.book(m.ID(), ledger.MovementReturn, 6, &orderID, base.Add(2*time.Minute))

	handler, err := queries.NewGetMaterialMovementsQueryHandler(suite.db)
	suite.Require().NoError(err)

	query, err := queries.NewGetMaterialMovementsQuery(m.ID(), 1, 2)
	suite.Require().NoError(err)
	page, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(3), page.Total)
	suite.Require().Len(page.Items, 2)
	suite.Equal("RETURN", page.Items[0].Type)
	suite.True(decimal.NewFromInt(50).Equal(page.Items[0].BalanceAfter))
	suite.Require().NotNil(page.Items[0].OrderID)
	suite.True(orderID.IsEqual(*page.Items[0].OrderID))
	suite.Equal("OUT", page.Items[1].Type)
	suite.True(decimal.NewFromInt(44).Equal(page.Items[1].BalanceAfter))

	query, err = queries.NewGetMaterialMovementsQuery(m.ID(), 2, 2)
	suite.Require().NoError(err)
	page, err = handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal("IN", page.Items[0].Type)
	suite.Nil(page.Items[0].OrderID)
}

func (suite *MaterialQueriesTestSuite) TestMovements_UnknownMaterial() {
	handler, err := queries.NewGetMaterialMovementsQueryHandler(suite.db)
	suite.Require().NoError(err)
	query, err := queries.NewGetMaterialMovementsQuery(kernel.NewUUID(), 0, 0)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *MaterialQueriesTestSuite) TestLedgerDiscrepancies_FindsDriftedBalance() {
	healthy := suite.seedMaterial("Glaze", 1, 40)
	drifted := suite.seedMaterial("Clay", 1, 40)
	suite.book(healthy.ID(), ledger.MovementOut, -5, nil, time.Now().UTC())

	suite.Require().NoError(suite.db.Exec(
		`UPDATE raw_materials SET stock_quantity = stock_quantity + 3 WHERE id = ?`, drifted.ID().Bytes(),
	).Error)

	handler, err := queries.NewGetLedgerDiscrepanciesQueryHandler(suite.db)
	suite.Require().NoError(err)

	views, err := handler.Handle(context.Background(), queries.NewGetLedgerDiscrepanciesQuery())

	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal(drifted.ID(), views[0].MaterialID)
	suite.True(decimal.NewFromInt(43).Equal(views[0].StockQuantity))
	suite.True(decimal.NewFromInt(40).Equal(views[0].LedgerSum))
	suite.True(decimal.NewFromInt(3).Equal(views[0].Difference))
}

func TestMaterialQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(MaterialQueriesTestSuite))
}

func TestNewGetMaterialMovementsQuery_Defaults(t *testing.T) {
	query, err := queries.NewGetMaterialMovementsQuery(kernel.NewUUID(), 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, query.Page())
	assert.Equal(t, queries.DefaultMovementsLimit, query.Limit())
	assert.Equal(t, 0, query.Offset())
}

func TestNewGetMaterialMovementsQuery_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
	}{
		{"negative page", -1, 10},
		{"negative limit", 1, -5},
		{"limit above max", 1, queries.MaxMovementsLimit + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewGetMaterialMovementsQuery(kernel.NewUUID(), tt.page, tt.limit)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		})
	}
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetStockLevelQuery{}.Validate(), queries.ErrGetStockLevelQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetLowStockReportQuery{}.Validate(), queries.ErrGetLowStockReportQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetMaterialMovementsQuery{}.Validate(), queries.ErrGetMaterialMovementsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListConflictsQuery{}.Validate(), queries.ErrListConflictsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetLedgerDiscrepanciesQuery{}.Validate(), queries.ErrGetLedgerDiscrepanciesQueryIsNotConstructed)
	require.NoError(t, queries.NewGetLowStockReportQuery().Validate())
}
