// Package errs provides the generic error types shared by every layer of the
// back-office engine: missing objects, invalid or missing values and stale
// row versions.
//
// Each error type follows the same shape:
//   - a sentinel variable (e.g. ErrObjectNotFound) usable with errors.Is
//   - a struct carrying the parameter name and optional cause
//   - New... and New...WithCause constructors
//   - Unwrap returning the sentinel
//
// Domain specific failures (invalid transitions, ledger write failures,
// detected conflicts) live next to their aggregates and follow the same shape.
package errs
