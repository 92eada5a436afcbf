// Package services provides domain services that implement business logic
// spanning multiple domain entities in the parcel system.
//
// The package includes:
//   - FeeCalculator: A domain service computing the delivery fee for a parcel
//     weight from the configured weight bands
//
// Domain services coordinate between aggregates, implementing business logic
// that doesn't naturally belong to a single aggregate root, following
// Domain-Driven Design principles.
package services
