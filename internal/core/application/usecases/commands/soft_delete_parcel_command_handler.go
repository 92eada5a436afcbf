package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
)

// SoftDeleteParcelCommandHandler handles parcel soft deletion.
// After the delete commits, the parcel reads as not-found everywhere; the
// audit entry holds the last full snapshot.
type SoftDeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewSoftDeleteParcelCommandHandler creates a handler for soft deletions.
func NewSoftDeleteParcelCommandHandler(uowFactory ParcelUoWFactory) SoftDeleteParcelCommandHandler {
	return SoftDeleteParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the soft delete command.
func (h *SoftDeleteParcelCommandHandler) Handle(ctx context.Context, cmd SoftDeleteParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	trackedParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	prevData, err := snapshotParcel(trackedParcel)
	if err != nil {
		return err
	}

	trackedParcel.SoftDelete()

	if err = parcelRepo.Update(ctx, trackedParcel); err != nil {
		return err
	}

	newData, err := snapshotParcel(trackedParcel)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.AdminID(), "admin", audit.ActionParcelSoftDelete,
		entityTypeParcel, trackedParcel.ID(), prevData, newData,
		audit.Links{ParcelID: ptrUUID(trackedParcel.ID())}, cmd.Meta(),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, auditEntry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
