package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ParcelRepository returns a ParcelRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	ParcelRepository() ParcelRepository

	// HistoryRepository returns a HistoryRepository instance bound to the current transaction.
	HistoryRepository() HistoryRepository

	// ExceptionRepository returns an ExceptionRepository instance bound to the current transaction.
	ExceptionRepository() ExceptionRepository

	// DeliveryRepository returns a DeliveryRepository instance bound to the current transaction.
	DeliveryRepository() DeliveryRepository

	// FeeConfigurationRepository returns a FeeConfigurationRepository instance bound to the current transaction.
	FeeConfigurationRepository() FeeConfigurationRepository

	// AuditRepository returns an AuditRepository instance bound to the current transaction.
	AuditRepository() AuditRepository

	// MemberDirectory returns a MemberDirectory instance bound to the current transaction.
	MemberDirectory() MemberDirectory
}
