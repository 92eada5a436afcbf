package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
)

// TransitionParcelCommandHandler handles parcel lifecycle transitions.
// The state change, its history entry, and the audit entry commit in one
// transaction; a validator rejection persists nothing.
type TransitionParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	notifier   ports.Notifier
}

// NewTransitionParcelCommandHandler creates a handler for transition operations.
func NewTransitionParcelCommandHandler(uowFactory ParcelUoWFactory, notifier ports.Notifier) TransitionParcelCommandHandler {
	return TransitionParcelCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the transition command.
func (h *TransitionParcelCommandHandler) Handle(ctx context.Context, cmd TransitionParcelCommand) error {
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
	fromStatus := trackedParcel.Status()

	if err = trackedParcel.TransitionTo(cmd.Target(), cmd.AdminOverride()); err != nil {
		return err
	}

	if err = parcelRepo.Update(ctx, trackedParcel); err != nil {
		return err
	}

	historyEntry, err := parcel.NewHistoryEntry(
		kernel.NewUUID(), trackedParcel.ID(), &fromStatus, cmd.Target(), cmd.ActorID(), cmd.Notes(),
	)
	if err != nil {
		return err
	}
	if err = uow.HistoryRepository().Append(ctx, historyEntry); err != nil {
		return err
	}

	newData, err := snapshotParcel(trackedParcel)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ActorID(), cmd.ActorRole(), audit.ActionParcelTransition,
		entityTypeParcel, trackedParcel.ID(), prevData, newData,
		audit.Links{ParcelID: ptrUUID(trackedParcel.ID())}, cmd.Meta(),
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

	h.notifyOwner(ctx, trackedParcel, cmd.Target())

	return nil
}

// notifyOwner informs the owner about the milestones they care about.
// Intermediate hops stay quiet.
func (h *TransitionParcelCommandHandler) notifyOwner(ctx context.Context, p *parcel.Parcel, target parcel.Status) {
	owner := p.Owner()
	if owner == nil {
		return
	}

	var title string
	switch target {
	case parcel.Stored:
		title = "Parcel stored"
	case parcel.Delivered:
		title = "Parcel delivered"
	default:
		return
	}

	notifyBestEffort(ctx, h.notifier, ports.Notification{
		RecipientID: *owner,
		Title:       title,
		Message:     fmt.Sprintf("Parcel %s is now %s", p.TrackingCode(), target),
		ParcelID:    ptrUUID(p.ID()),
	})
}
