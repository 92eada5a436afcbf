// Package exception provides domain entities for parcel exception handling.
// An exception records a problem found with a parcel (unreadable label, damage,
// unresolvable member code) and drives the parcel's exception lock: while any
// exception on a parcel is open or in progress, the parcel rejects lifecycle
// transitions from non-elevated callers.
//
// The package includes:
//   - Exception: The aggregate root with assign/resolve/cancel transitions
//   - Kind: Classification of what went wrong
//   - Status: OPEN -> IN_PROGRESS -> RESOLVED | CANCELLED, final states immutable
//
// Key business rules:
//   - A resolved exception always carries resolution text, a handler, and a resolved-at timestamp
//   - Closed exceptions (resolved or cancelled) reject every further mutation
//   - The parcel's lock is a projection of its open-exception count, recomputed
//     in the same transaction that closes an exception
package exception
