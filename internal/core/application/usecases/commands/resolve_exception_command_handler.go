package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
)

// ResolveExceptionCommandHandler handles exception resolution.
// The resolution and the parcel-lock re-evaluation commit in one transaction:
// the lock is shared across all of a parcel's exceptions, so it clears only
// when no open or in-progress exception remains.
type ResolveExceptionCommandHandler struct {
	uowFactory ExceptionUoWFactory
	notifier   ports.Notifier
}

// NewResolveExceptionCommandHandler creates a handler for exception resolution.
func NewResolveExceptionCommandHandler(uowFactory ExceptionUoWFactory, notifier ports.Notifier) ResolveExceptionCommandHandler {
	return ResolveExceptionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the resolution command.
func (h *ResolveExceptionCommandHandler) Handle(ctx context.Context, cmd ResolveExceptionCommand) error {
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

	exceptionRepo := uow.ExceptionRepository()
	trackedException, err := exceptionRepo.Get(ctx, cmd.ExceptionID())
	if err != nil {
		return err
	}

	prevData, err := snapshotException(trackedException)
	if err != nil {
		return err
	}

	if err = trackedException.Resolve(cmd.Resolution(), cmd.HandlerID()); err != nil {
		return err
	}

	if err = exceptionRepo.Update(ctx, trackedException); err != nil {
		return err
	}

	unlockedParcel, err := reevaluateParcelLock(ctx, uow, trackedException.ParcelID())
	if err != nil {
		return err
	}

	newData, err := snapshotException(trackedException)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.HandlerID(), cmd.ActorRole(), audit.ActionExceptionResolve,
		entityTypeException, trackedException.ID(), prevData, newData,
		audit.Links{
			ParcelID:    ptrUUID(trackedException.ParcelID()),
			ExceptionID: ptrUUID(trackedException.ID()),
		},
		cmd.Meta(),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, auditEntry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if unlockedParcel != nil {
		if owner := unlockedParcel.Owner(); owner != nil {
			notifyBestEffort(ctx, h.notifier, ports.Notification{
				RecipientID: *owner,
				Title:       "Exception resolved",
				Message:     fmt.Sprintf("Parcel %s is no longer blocked", unlockedParcel.TrackingCode()),
				ParcelID:    ptrUUID(unlockedParcel.ID()),
			})
		}
	}

	return nil
}

// reevaluateParcelLock recomputes the parcel's exception lock from the count
// of its remaining open exceptions. Returns the parcel when the lock was
// released, nil when it stays set. Unlocking an ownerless parcel fails: the
// ownership gap must be fixed before the lock may clear.
func reevaluateParcelLock(ctx context.Context, uow ExceptionUoW, parcelID kernel.UUID) (*parcel.Parcel, error) {
	openCount, err := uow.ExceptionRepository().CountOpenByParcel(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if openCount > 0 {
		return nil, nil
	}

	parcelRepo := uow.ParcelRepository()
	trackedParcel, err := parcelRepo.Get(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	if err = trackedParcel.ClearException(); err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, trackedParcel); err != nil {
		return nil, err
	}

	return trackedParcel, nil
}
