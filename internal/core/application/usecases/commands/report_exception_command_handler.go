package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// ReportExceptionCommandHandler handles explicit exception reports.
// Creating the exception and setting the parcel's lock happen in one
// transaction; a parcel can carry at most one open exception per kind.
type ReportExceptionCommandHandler struct {
	uowFactory ExceptionUoWFactory
	notifier   ports.Notifier
}

// NewReportExceptionCommandHandler creates a handler for exception reports.
func NewReportExceptionCommandHandler(uowFactory ExceptionUoWFactory, notifier ports.Notifier) ReportExceptionCommandHandler {
	return ReportExceptionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the report command.
func (h *ReportExceptionCommandHandler) Handle(ctx context.Context, cmd ReportExceptionCommand) error {
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

	exceptionRepo := uow.ExceptionRepository()
	alreadyOpen, err := exceptionRepo.ExistsOpenByParcelAndKind(ctx, trackedParcel.ID(), cmd.Kind())
	if err != nil {
		return err
	}
	if alreadyOpen {
		return errs.NewConflictError(fmt.Sprintf("open %s exception", cmd.Kind()))
	}

	newException, err := exception.NewException(
		kernel.NewUUID(), trackedParcel.ID(), cmd.Kind(), cmd.Description(), cmd.ActorID(),
	)
	if err != nil {
		return err
	}
	if err = exceptionRepo.Add(ctx, newException); err != nil {
		return err
	}

	trackedParcel.MarkException()
	if err = parcelRepo.Update(ctx, trackedParcel); err != nil {
		return err
	}

	newData, err := snapshotException(newException)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ActorID(), cmd.ActorRole(), audit.ActionExceptionCreate,
		entityTypeException, newException.ID(), nil, newData,
		audit.Links{ParcelID: ptrUUID(trackedParcel.ID()), ExceptionID: ptrUUID(newException.ID())},
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

	if owner := trackedParcel.Owner(); owner != nil {
		notifyBestEffort(ctx, h.notifier, ports.Notification{
			RecipientID: *owner,
			Title:       "Exception reported",
			Message:     fmt.Sprintf("A %s exception was reported on parcel %s", cmd.Kind(), trackedParcel.TrackingCode()),
			ParcelID:    ptrUUID(trackedParcel.ID()),
		})
	}

	return nil
}
