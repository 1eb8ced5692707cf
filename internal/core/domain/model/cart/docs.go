// Package cart models the priced copy of a user's cart taken at order placement.
//
// A Snapshot is built by the cart repository from the live cart rows joined with
// current product data. It is never persisted; the order ledger turns it into an
// order and then clears exactly the rows it captured.
package cart
