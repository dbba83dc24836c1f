// Package ledger describes append-only stock movements of raw materials and
// the errors raised when a movement cannot be booked.
//
// Quantities are signed: OUT rows are negative, IN and RETURN rows positive,
// ADJUSTMENT rows carry whatever sign the correction needs. Summing every row
// of a material yields its balance.
package ledger
