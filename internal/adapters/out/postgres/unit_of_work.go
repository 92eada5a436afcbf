// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The Unit of Work maintains the set of aggregates affected by one
// business operation and coordinates writing them out in a single database
// transaction, so a command either lands completely or not at all. In
// particular the audit entry of an operation commits atomically with the data
// it describes.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.ParcelRepository().Add(ctx, parcel); err != nil {
//	    return err
//	}
//	if err := uow.AuditRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns its own transaction state; concurrent
// operations must use separate instances from the factory.
package postgres

import (
	"context"

	"parceltrack/internal/adapters/out/postgres/auditrepo"
	"parceltrack/internal/adapters/out/postgres/deliveryrepo"
	"parceltrack/internal/adapters/out/postgres/exceptionrepo"
	"parceltrack/internal/adapters/out/postgres/feerepo"
	"parceltrack/internal/adapters/out/postgres/historyrepo"
	"parceltrack/internal/adapters/out/postgres/memberrepo"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Tracking enables post-commit processing such as notification fan-out.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a shared GORM
// database connection. The factory ensures each business operation gets a
// fresh unit of work with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is used for all created
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the repositories
// of one business operation. Repositories obtained from the accessors run
// inside the transaction once Begin has been called; before Begin they fall
// back to the main connection for immediate execution.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Repeated calls on the same instance are safe and will not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Rolling back without an active transaction returns gorm.ErrInvalidTransaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the transaction when one is active, the main connection otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// ParcelRepository provides parcel persistence bound to the current transaction.
// Added and updated parcels are registered with the tracked-aggregate set.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

// HistoryRepository provides the append-only parcel timeline bound to the
// current transaction.
func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return historyrepo.NewGormHistoryRepository(uow.conn())
}

// ExceptionRepository provides exception persistence bound to the current
// transaction.
func (uow *GormUnitOfWork) ExceptionRepository() ports.ExceptionRepository {
	return exceptionrepo.NewGormExceptionRepository(uow.conn(), uow)
}

// DeliveryRepository provides delivery persistence bound to the current
// transaction.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

// FeeConfigurationRepository provides read access to fee configurations bound
// to the current transaction.
func (uow *GormUnitOfWork) FeeConfigurationRepository() ports.FeeConfigurationRepository {
	return feerepo.NewGormFeeConfigurationRepository(uow.conn())
}

// AuditRepository provides the append-only audit trail bound to the current
// transaction. Appending inside the transaction is what makes the audit
// record atomic with the operation it records.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}

// MemberDirectory provides member lookup and default-address persistence
// bound to the current transaction, so a delivery request and the address it
// saves commit or roll back together.
func (uow *GormUnitOfWork) MemberDirectory() ports.MemberDirectory {
	return memberrepo.NewGormMemberDirectory(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repository implementations call it when aggregates are added or
// updated; the tracked set can be inspected after the transaction completes.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
