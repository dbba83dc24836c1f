package jobs

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/material"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLowStockReporter struct{ mock.Mock }

func (m *MockLowStockReporter) Handle(
	ctx context.Context, query queries.GetLowStockReportQuery,
) ([]queries.StockLevelView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.StockLevelView), args.Error(1)
}

type MockDiscrepancyAuditor struct{ mock.Mock }

func (m *MockDiscrepancyAuditor) Handle(
	ctx context.Context, query queries.GetLedgerDiscrepanciesQuery,
) ([]queries.DiscrepancyView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.DiscrepancyView), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...event.Event) error {
	return m.Called(ctx, events).Error(0)
}

func lowView(level material.StockLevel, stock, min, reorder string) queries.StockLevelView {
	return queries.StockLevelView{
		MaterialID:       kernel.NewUUID(),
		Name:             "Leather",
		StockQuantity:    decimal.RequireFromString(stock),
		MinStock:         decimal.RequireFromString(min),
		Level:            level,
		SuggestedReorder: decimal.RequireFromString(reorder),
	}
}

func TestLowStockScanJob_PublishesOneEventPerMaterial(t *testing.T) {
	critical := lowView(material.LevelCritical, "40", "100", "160")
	low := lowView(material.LevelLow, "110", "100", "90")

	reporter := new(MockLowStockReporter)
	reporter.On("Handle", mock.Anything, mock.Anything).Return([]queries.StockLevelView{critical, low}, nil)

	var got []event.Event
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			got = append(got, args.Get(1).([]event.Event)...)
		}).
		Return(nil)

	job := NewLowStockScanJob("@every 1m", reporter, publisher, zerolog.Nop())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	published, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, published)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, event.NameStockBelowThreshold, first.Name)
	assert.Equal(t, critical.MaterialID.String(), first.Key)
	assert.Equal(t, fixed, first.OccurredAt)

	payload, ok := first.Payload.(event.StockBelowThreshold)
	require.True(t, ok)
	assert.Equal(t, "CRITICAL", payload.Level)
	assert.True(t, payload.SuggestedReorder.Equal(decimal.NewFromInt(160)))
	assert.True(t, payload.Min.Equal(decimal.NewFromInt(100)))
}

func TestLowStockScanJob_PublishFailureDoesNotAbortScan(t *testing.T) {
	reporter := new(MockLowStockReporter)
	reporter.On("Handle", mock.Anything, mock.Anything).Return([]queries.StockLevelView{
		lowView(material.LevelCritical, "0", "10", "20"),
		lowView(material.LevelLow, "11", "10", "9"),
	}, nil)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	job := NewLowStockScanJob("@every 1m", reporter, publisher, zerolog.Nop())

	published, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, published)
	publisher.AssertNumberOfCalls(t, "Publish", 2)
}

func TestLowStockScanJob_AllPublishesFail(t *testing.T) {
	reporter := new(MockLowStockReporter)
	reporter.On("Handle", mock.Anything, mock.Anything).Return([]queries.StockLevelView{
		lowView(material.LevelCritical, "0", "10", "20"),
	}, nil)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	job := NewLowStockScanJob("@every 1m", reporter, publisher, zerolog.Nop())

	published, err := job.Run(context.Background())

	require.Error(t, err)
	assert.Zero(t, published)
}

func TestLowStockScanJob_EmptyReportPublishesNothing(t *testing.T) {
	reporter := new(MockLowStockReporter)
	reporter.On("Handle", mock.Anything, mock.Anything).Return([]queries.StockLevelView{}, nil)
	publisher := new(MockEventPublisher)

	job := NewLowStockScanJob("@every 1m", reporter, publisher, zerolog.Nop())

	published, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, published)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestLowStockScanJob_ReportError(t *testing.T) {
	reporter := new(MockLowStockReporter)
	reporter.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db gone"))

	job := NewLowStockScanJob("@every 1m", reporter, new(MockEventPublisher), zerolog.Nop())

	_, err := job.Run(context.Background())

	require.EqualError(t, err, "db gone")
}

func TestLedgerAuditJob_LogsEveryDiscrepancy(t *testing.T) {
	materialID := kernel.NewUUID()
	auditor := new(MockDiscrepancyAuditor)
	auditor.On("Handle", mock.Anything, mock.Anything).Return([]queries.DiscrepancyView{{
		MaterialID:    materialID,
		Name:          "Thread",
		StockQuantity: decimal.NewFromInt(12),
		LedgerSum:     decimal.NewFromInt(10),
		Difference:    decimal.NewFromInt(2),
	}}, nil)

	var buf bytes.Buffer
	job := NewLedgerAuditJob("@every 1h", auditor, zerolog.New(&buf))

	discrepancies, err := job.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, discrepancies, 1)
	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"component":"ledger_audit_job"`)
	assert.Contains(t, out, materialID.String())
	assert.Contains(t, out, `"difference":"2"`)
}

func TestJobManager_InvalidScheduleStopsStartedJobs(t *testing.T) {
	jm := NewJobManager(
		Schedules{LowStockScan: "@every 1h", LedgerAudit: "not a schedule"},
		new(MockLowStockReporter), new(MockDiscrepancyAuditor), new(MockEventPublisher),
		zerolog.Nop(),
	)

	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger audit")
}

func TestJobManager_StartAndStop(t *testing.T) {
	jm := NewJobManager(
		Schedules{LowStockScan: "0 */5 * * * *", LedgerAudit: "0 0 * * * *"},
		new(MockLowStockReporter), new(MockDiscrepancyAuditor), new(MockEventPublisher),
		zerolog.Nop(),
	)

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}
