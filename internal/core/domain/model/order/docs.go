// Package order contains the Order aggregate produced by the order ledger.
//
// An order is created from a non-empty cart snapshot. Its items copy the product
// title, author, photo and unit price at placement time, and the total is the sum
// of unitPrice×quantity over those items. Neither the items nor the total are ever
// recomputed from live product data, so order history is immutable.
//
// Orders start in the Placed status. Later statuses are owned by fulfilment
// processes outside this service and are carried through as read values.
package order
