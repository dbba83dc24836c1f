// Package material holds raw material master data: the RawMaterial aggregate,
// its Supplier and the StockLevel classification.
//
// stock_quantity is a denormalized balance. It is only ever moved by the stock
// ledger, so this package exposes no setter for it.
package material
