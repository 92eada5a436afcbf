// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parceltrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// HistoryRepoFactory provides access to the state-history repository within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// ExceptionRepoFactory provides access to the exception repository within a transaction.
	ExceptionRepoFactory interface {
		ExceptionRepository() ports.ExceptionRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// FeeConfigurationRepoFactory provides access to fee configurations within a transaction.
	FeeConfigurationRepoFactory interface {
		FeeConfigurationRepository() ports.FeeConfigurationRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	// Every unit of work exposes it: a state-changing operation without an audit
	// entry must be impossible by construction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// MemberDirectoryFactory provides member lookup and default-address
	// persistence within a transaction.
	MemberDirectoryFactory interface {
		MemberDirectory() ports.MemberDirectory
	}

	// ParcelUoW manages transactions for parcel lifecycle operations:
	// state transitions, ownership overrides, soft deletes.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		HistoryRepoFactory
		AuditRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// IntakeUoW manages the intake transaction, which may create an
	// invalid-member-code exception alongside the parcel.
	IntakeUoW interface {
		TxManager
		ParcelRepoFactory
		HistoryRepoFactory
		ExceptionRepoFactory
		AuditRepoFactory
	}

	// IntakeUoWFactory creates new intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// ExceptionUoW manages transactions for exception handling operations.
	// The parcel repository is included because the parcel's exception lock
	// is recomputed in the same transaction that opens or closes an exception.
	ExceptionUoW interface {
		TxManager
		ExceptionRepoFactory
		ParcelRepoFactory
		AuditRepoFactory
	}

	// ExceptionUoWFactory creates new exception unit of work instances.
	ExceptionUoWFactory interface {
		Create() ExceptionUoW
	}

	// DeliveryUoW manages transactions for delivery fulfillment operations.
	// Delivery steps move the parcel through its own state machine, so the
	// parcel and history repositories ride in the same transaction. The
	// member directory rides along too: a requested default-address save
	// commits atomically with the delivery request.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
		ParcelRepoFactory
		HistoryRepoFactory
		FeeConfigurationRepoFactory
		AuditRepoFactory
		MemberDirectoryFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}
)
