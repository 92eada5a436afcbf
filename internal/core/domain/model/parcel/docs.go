// Package parcel provides domain entities and business logic for parcel
// lifecycle management in the warehouse system. It implements the Parcel
// aggregate root together with the lifecycle state machine and the
// append-only transition ledger.
//
// The package includes:
//   - Parcel: The aggregate root managing identity, ownership, the exception
//     lock, and lifecycle transitions
//   - Status: A state machine enforcing the strictly linear lifecycle
//     Expected -> Arrived -> Stored -> DeliveryRequested -> OutForDelivery -> Delivered,
//     plus the constrained backward moves available to elevated callers
//   - HistoryEntry: One immutable record per performed transition
//
// Key business rules:
//   - A parcel with no resolved owner is always exception-locked
//   - An exception-locked parcel rejects transitions unless the caller holds admin override
//   - Exactly one forward step per state; no skipping, no lateral moves
//   - Parcels are soft-deleted only; their history survives for audit continuity
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package parcel
