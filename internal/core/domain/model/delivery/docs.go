// Package delivery provides domain entities for delivery fulfillment.
// A Delivery is the one-to-one record attached to a parcel once its owner
// requests home delivery: destination address, weight and fee snapshots, and
// the payment and fulfillment milestones.
//
// The package includes:
//   - Delivery: The aggregate root driving payment confirm -> dispatch -> complete
//   - PaymentStatus: PENDING -> CONFIRMED | FAILED | REFUNDED
//   - Address: The validated destination value object
//   - Fee: The immutable base/weight/total breakdown in integer cents
//
// Key business rules:
//   - A confirmed payment always carries the confirmer's ID and a timestamp
//   - Dispatch requires a confirmed payment; completion requires a prior dispatch
//   - The fee and weight are snapshotted at request time and never recomputed
package delivery
