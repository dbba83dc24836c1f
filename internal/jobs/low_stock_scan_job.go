package jobs

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/event"
	"backoffice/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type LowStockReporter interface {
	Handle(ctx context.Context, query queries.GetLowStockReportQuery) ([]queries.StockLevelView, error)
}

// LowStockScanJob publishes stock.below_threshold for every LOW or CRITICAL
// material on each tick.
type LowStockScanJob struct {
	schedule  string
	reporter  LowStockReporter
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    zerolog.Logger
	now       func() time.Time
}

func NewLowStockScanJob(
	schedule string,
	reporter LowStockReporter,
	publisher ports.EventPublisher,
	logger zerolog.Logger,
) *LowStockScanJob {
	return &LowStockScanJob{
		schedule:  schedule,
		reporter:  reporter,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With().Str("component", "low_stock_scan_job").Logger(),
		now:       time.Now,
	}
}

func (j *LowStockScanJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error().Err(err).Msg("low stock scan failed")
		}
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("low stock scan job started")
	return nil
}

func (j *LowStockScanJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("low stock scan job stopped")
}

// Run performs one scan and returns how many events were published. Publish
// failures are logged per material and do not abort the scan.
func (j *LowStockScanJob) Run(ctx context.Context) (int, error) {
	report, err := j.reporter.Handle(ctx, queries.NewGetLowStockReportQuery())
	if err != nil {
		return 0, err
	}

	at := j.now().UTC()
	published := 0
	var errList []error
	for _, view := range report {
		e := event.NewStockBelowThreshold(event.StockBelowThreshold{
			MaterialID:       view.MaterialID,
			Level:            view.Level.String(),
			Stock:            view.StockQuantity,
			Min:              view.MinStock,
			SuggestedReorder: view.SuggestedReorder,
		}, at)

		if err := j.publisher.Publish(ctx, e); err != nil {
			j.logger.Warn().Err(err).Str("material_id", view.MaterialID.String()).Msg("publish low stock event")
			errList = append(errList, err)
			continue
		}
		published++
	}

	j.logger.Debug().Int("materials", len(report)).Int("published", published).Msg("low stock scan finished")
	if published == 0 && len(errList) > 0 {
		return 0, errors.Join(errList...)
	}
	return published, nil
}
