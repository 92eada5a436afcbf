package commands

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/exception"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// IntakeParcelCommandHandler handles the business logic for parcel intake.
// Resolves the owner through the member directory; when no active owner
// matches, the parcel is created as an orphan with a linked invalid-member-code
// exception in the same transaction.
type IntakeParcelCommandHandler struct {
	uowFactory IntakeUoWFactory
	members    ports.MemberDirectory
	notifier   ports.Notifier
}

// NewIntakeParcelCommandHandler creates a handler for parcel intake operations.
func NewIntakeParcelCommandHandler(
	uowFactory IntakeUoWFactory,
	members ports.MemberDirectory,
	notifier ports.Notifier,
) IntakeParcelCommandHandler {
	return IntakeParcelCommandHandler{
		uowFactory: uowFactory,
		members:    members,
		notifier:   notifier,
	}
}

// Handle processes the intake command.
// The parcel, its null-to-arrived history entry, the orphan exception when the
// member code does not resolve, and the audit entry commit in one transaction.
func (h *IntakeParcelCommandHandler) Handle(ctx context.Context, cmd IntakeParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ownerID, err := h.resolveOwner(ctx, cmd.MemberCode())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	exists, err := parcelRepo.ExistsByTrackingCode(ctx, cmd.TrackingCode())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewConflictError("trackingCode")
	}

	newParcel, err := parcel.NewParcel(
		cmd.ParcelID(), cmd.TrackingCode(), cmd.MemberCode(), ownerID, cmd.ActorID(), cmd.Weight(),
	)
	if err != nil {
		return err
	}

	if err = parcelRepo.Add(ctx, newParcel); err != nil {
		return err
	}

	links := audit.Links{ParcelID: ptrUUID(newParcel.ID())}
	if ownerID == nil {
		orphanException, exErr := h.createOrphanException(ctx, uow, cmd)
		if exErr != nil {
			return exErr
		}
		links.ExceptionID = ptrUUID(orphanException.ID())
	}

	historyEntry, err := parcel.NewHistoryEntry(
		kernel.NewUUID(), newParcel.ID(), nil, parcel.Arrived, cmd.ActorID(), cmd.Description(),
	)
	if err != nil {
		return err
	}
	if err = uow.HistoryRepository().Append(ctx, historyEntry); err != nil {
		return err
	}

	newData, err := snapshotParcel(newParcel)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ActorID(), cmd.ActorRole(), audit.ActionParcelIntake,
		entityTypeParcel, newParcel.ID(), nil, newData, links, cmd.Meta(),
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

	if ownerID != nil {
		notifyBestEffort(ctx, h.notifier, ports.Notification{
			RecipientID: *ownerID,
			Title:       "Parcel arrived",
			Message:     fmt.Sprintf("Your parcel %s has arrived at the warehouse", cmd.TrackingCode()),
			ParcelID:    ptrUUID(newParcel.ID()),
		})
	}

	return nil
}

// resolveOwner maps a member code to an owner reference.
// Anything other than an active, non-deleted member counts as unresolved:
// the parcel will be taken in as an orphan rather than bound to a guess.
func (h *IntakeParcelCommandHandler) resolveOwner(ctx context.Context, memberCode string) (*kernel.UUID, error) {
	if memberCode == "" {
		return nil, nil
	}

	record, err := h.members.LookupByCode(ctx, memberCode)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !record.IsActive || record.IsDeleted {
		return nil, nil
	}

	return &record.ID, nil
}

func (h *IntakeParcelCommandHandler) createOrphanException(
	ctx context.Context,
	uow IntakeUoW,
	cmd IntakeParcelCommand,
) (*exception.Exception, error) {
	description := fmt.Sprintf("member code %q did not resolve to an active member", cmd.MemberCode())
	orphanException, err := exception.NewException(
		kernel.NewUUID(), cmd.ParcelID(), exception.KindInvalidMemberCode, description, cmd.ActorID(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.ExceptionRepository().Add(ctx, orphanException); err != nil {
		return nil, err
	}

	return orphanException, nil
}

func ptrUUID(id kernel.UUID) *kernel.UUID {
	return &id
}
