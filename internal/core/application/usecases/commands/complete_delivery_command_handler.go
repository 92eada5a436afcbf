package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
)

// CompleteDeliveryCommandHandler handles delivery completion.
// The delivered timestamp and the terminal parcel transition commit in one
// transaction.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.Notifier
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory, notifier ports.Notifier) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the completion command.
// Requires a dispatched delivery and a parcel in out-for-delivery state.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	trackedDelivery, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	prevData, err := snapshotDelivery(trackedDelivery)
	if err != nil {
		return err
	}

	if err = trackedDelivery.Complete(); err != nil {
		return err
	}
	if err = deliveryRepo.Update(ctx, trackedDelivery); err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	trackedParcel, err := parcelRepo.Get(ctx, trackedDelivery.ParcelID())
	if err != nil {
		return err
	}

	fromStatus := trackedParcel.Status()
	if err = trackedParcel.TransitionTo(parcel.Delivered, false); err != nil {
		return err
	}
	if err = parcelRepo.Update(ctx, trackedParcel); err != nil {
		return err
	}

	historyEntry, err := parcel.NewHistoryEntry(
		kernel.NewUUID(), trackedParcel.ID(), &fromStatus, parcel.Delivered,
		cmd.ActorID(), "delivery completed",
	)
	if err != nil {
		return err
	}
	if err = uow.HistoryRepository().Append(ctx, historyEntry); err != nil {
		return err
	}

	newData, err := snapshotDelivery(trackedDelivery)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ActorID(), cmd.ActorRole(), audit.ActionDeliveryComplete,
		entityTypeDelivery, trackedDelivery.ID(), prevData, newData,
		audit.Links{
			ParcelID:   ptrUUID(trackedParcel.ID()),
			DeliveryID: ptrUUID(trackedDelivery.ID()),
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

	notifyBestEffort(ctx, h.notifier, ports.Notification{
		RecipientID: trackedDelivery.RecipientID(),
		Title:       "Parcel delivered",
		Message:     fmt.Sprintf("Parcel %s was delivered", trackedParcel.TrackingCode()),
		ParcelID:    ptrUUID(trackedParcel.ID()),
		DeliveryID:  ptrUUID(trackedDelivery.ID()),
	})

	return nil
}
