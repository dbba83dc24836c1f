package jobs

import (
	"fmt"

	"backoffice/internal/core/ports"

	"github.com/rs/zerolog"
)

// Schedules holds six-field cron expressions (seconds first).
type Schedules struct {
	LowStockScan string
	LedgerAudit  string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	lowStockScanJob *LowStockScanJob
	ledgerAuditJob  *LedgerAuditJob
}

func NewJobManager(
	schedules Schedules,
	reporter LowStockReporter,
	auditor DiscrepancyAuditor,
	publisher ports.EventPublisher,
	logger zerolog.Logger,
) *JobManager {
	return &JobManager{
		lowStockScanJob: NewLowStockScanJob(schedules.LowStockScan, reporter, publisher, logger),
		ledgerAuditJob:  NewLedgerAuditJob(schedules.LedgerAudit, auditor, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.lowStockScanJob.Start(); err != nil {
		return fmt.Errorf("failed to start low stock scan job: %w", err)
	}

	if err := jm.ledgerAuditJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.lowStockScanJob.Stop()
		return fmt.Errorf("failed to start ledger audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	jm.lowStockScanJob.Stop()
	jm.ledgerAuditJob.Stop()
}
