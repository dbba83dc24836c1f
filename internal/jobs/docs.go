// Package jobs provides scheduled background tasks for the backoffice.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. LowStockScanJob - runs the low-stock report and publishes
// stock.below_threshold for every material that needs attention
// 2. LedgerAuditJob - checks every material balance against the sum of its
// movements and logs each discrepancy at error level
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(jobs.Schedules{
//		LowStockScan: "0 */5 * * * *",
//		LedgerAudit:  "0 0 * * * *",
//	}, lowStockHandler, auditHandler, publisher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick tries again. A job that fails to
// start stops the ones already running.
package jobs
