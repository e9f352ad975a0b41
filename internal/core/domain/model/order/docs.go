// Package order contains the Order aggregate and the records it owns:
// item lines, delivery information, bank payments, online (gateway) payments,
// shipment packages, and status history entries.
//
// Every external event source correlates with the aggregate through a durable
// idempotency key: the bank feed through the unique external transaction id,
// the payment gateway through the (order hash, gateway id) pair, and the
// carrier through the existence of at least one Package. Re-processing the
// same external event is therefore always safe.
package order
