// Package recipe models sellable products and their bill of materials.
//
// A Recipe row says how much of one raw material (or labor) one unit of a
// product consumes. Rows with an option key only apply when an order item's
// personalization carries that key.
package recipe
