// Package delivery tracks the fulfilment of one order by one driver.
//
// State machine:
//
//	Unassigned ──Accept──> Accepted ──(external)──> Delivered
//	                          │  ▲                    Cancelled
//	                          └──┘ re-accept by the same driver
//
// Delivered and Cancelled are set by dispatch processes outside this service and
// are terminal. Nothing in this package moves a delivery back to an earlier state.
package delivery
