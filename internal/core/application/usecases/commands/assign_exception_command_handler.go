package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
)

// AssignExceptionCommandHandler handles exception assignment.
type AssignExceptionCommandHandler struct {
	uowFactory ExceptionUoWFactory
}

// NewAssignExceptionCommandHandler creates a handler for exception assignment.
func NewAssignExceptionCommandHandler(uowFactory ExceptionUoWFactory) AssignExceptionCommandHandler {
	return AssignExceptionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
func (h *AssignExceptionCommandHandler) Handle(ctx context.Context, cmd AssignExceptionCommand) error {
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

	if err = trackedException.Assign(cmd.HandlerID()); err != nil {
		return err
	}

	if err = exceptionRepo.Update(ctx, trackedException); err != nil {
		return err
	}

	newData, err := snapshotException(trackedException)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.HandlerID(), cmd.ActorRole(), audit.ActionExceptionAssign,
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
