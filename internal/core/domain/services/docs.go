// Package services contains pure domain services: decision logic that takes
// domain objects and plain values and returns decisions, without touching
// repositories, clocks, or external collaborators.
//
//   - SweepPlanner: cancel/ping/auto-complete decisions for the payment
//     reconciler, with "now" always injected by the caller
//   - BatchPlanner: the one-carrier-per-batch invariant and shipment field
//     validation for the carrier dispatcher
//   - PaymentLineBuilder: gateway session lines with the rounding adjustment
//     that makes line sums exactly match the order total
package services
