// Package services provides stateless domain services of the back-office
// engine. They compute decisions from aggregates and leave persistence to the
// application layer.
//
// The package includes:
//   - BOMResolver: explodes an ordered product into raw material requirements
//   - StockAdvisor: classifies balances and suggests reorder quantities
//   - ConflictDetector: decides whether a concurrent edit may proceed
package services
