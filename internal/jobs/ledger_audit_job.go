package jobs

import (
	"context"

	"backoffice/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type DiscrepancyAuditor interface {
	Handle(ctx context.Context, query queries.GetLedgerDiscrepanciesQuery) ([]queries.DiscrepancyView, error)
}

// LedgerAuditJob checks that every material balance equals the sum of its
// ledger movements.
type LedgerAuditJob struct {
	schedule string
	auditor  DiscrepancyAuditor
	cron     *cron.Cron
	logger   zerolog.Logger
}

func NewLedgerAuditJob(schedule string, auditor DiscrepancyAuditor, logger zerolog.Logger) *LedgerAuditJob {
	return &LedgerAuditJob{
		schedule: schedule,
		auditor:  auditor,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With().Str("component", "ledger_audit_job").Logger(),
	}
}

func (j *LedgerAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.logger.Error().Err(err).Msg("ledger audit failed")
		}
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("ledger audit job started")
	return nil
}

func (j *LedgerAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("ledger audit job stopped")
}

// Run audits the ledger once and returns the discrepancies it logged.
func (j *LedgerAuditJob) Run(ctx context.Context) ([]queries.DiscrepancyView, error) {
	discrepancies, err := j.auditor.Handle(ctx, queries.NewGetLedgerDiscrepanciesQuery())
	if err != nil {
		return nil, err
	}

	for _, d := range discrepancies {
		j.logger.Error().
			Str("material_id", d.MaterialID.String()).
			Str("name", d.Name).
			Stringer("stock_quantity", d.StockQuantity).
			Stringer("ledger_sum", d.LedgerSum).
			Stringer("difference", d.Difference).
			Msg("ledger discrepancy")
	}
	if len(discrepancies) == 0 {
		j.logger.Debug().Msg("ledger balanced")
	}
	return discrepancies, nil
}
