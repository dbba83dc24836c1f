// Package order provides the Order aggregate of the back-office engine and the
// status state machine every order moves through.
//
// The package includes:
//   - Order: the aggregate root holding items, money, customer and shipping data
//   - Item: an ordered product line with personalization options
//   - Status: the lifecycle state machine with a fixed successor table
//   - StockEffect: what a transition does to raw material stock
//
// Key business rules:
//   - New orders start in PENDING
//   - Status only moves along the successor table; DELIVERED and REFUNDED are final
//   - Confirming a PENDING order commits stock; cancelling or refunding a
//     committed order releases it exactly once
//   - Items are frozen once the order leaves PENDING
//   - net_profit is always total - discount - labor_cost
package order
