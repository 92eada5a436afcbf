package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
)

// CancelExceptionCommandHandler handles exception cancellation.
type CancelExceptionCommandHandler struct {
	uowFactory ExceptionUoWFactory
}

// NewCancelExceptionCommandHandler creates a handler for exception cancellation.
func NewCancelExceptionCommandHandler(uowFactory ExceptionUoWFactory) CancelExceptionCommandHandler {
	return CancelExceptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
func (h *CancelExceptionCommandHandler) Handle(ctx context.Context, cmd CancelExceptionCommand) error {
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

	if err = trackedException.Cancel(cmd.HandlerID()); err != nil {
		return err
	}

	if err = exceptionRepo.Update(ctx, trackedException); err != nil {
		return err
	}

	if _, err = reevaluateParcelLock(ctx, uow, trackedException.ParcelID()); err != nil {
		return err
	}

	newData, err := snapshotException(trackedException)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.HandlerID(), cmd.ActorRole(), audit.ActionExceptionCancel,
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

	return uow.Commit(ctx)
}
