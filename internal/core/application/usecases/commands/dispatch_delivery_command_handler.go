package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
)

// DispatchDeliveryCommandHandler handles delivery dispatch.
// The dispatch timestamp and the requested-to-out-for-delivery parcel
// transition commit in one transaction.
type DispatchDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.Notifier
}

// NewDispatchDeliveryCommandHandler creates a handler for delivery dispatch.
func NewDispatchDeliveryCommandHandler(uowFactory DeliveryUoWFactory, notifier ports.Notifier) DispatchDeliveryCommandHandler {
	return DispatchDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the dispatch command.
// Requires confirmed payment and a parcel in delivery-requested state.
func (h *DispatchDeliveryCommandHandler) Handle(ctx context.Context, cmd DispatchDeliveryCommand) error {
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

	if err = trackedDelivery.Dispatch(); err != nil {
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
	if err = trackedParcel.TransitionTo(parcel.OutForDelivery, false); err != nil {
		return err
	}
	if err = parcelRepo.Update(ctx, trackedParcel); err != nil {
		return err
	}

	historyEntry, err := parcel.NewHistoryEntry(
		kernel.NewUUID(), trackedParcel.ID(), &fromStatus, parcel.OutForDelivery,
		cmd.ActorID(), "delivery dispatched",
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
		kernel.NewUUID(), cmd.ActorID(), cmd.ActorRole(), audit.ActionDeliveryDispatch,
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
		Title:       "Parcel out for delivery",
		Message:     fmt.Sprintf("Parcel %s is on its way to %s", trackedParcel.TrackingCode(), trackedDelivery.Address()),
		ParcelID:    ptrUUID(trackedParcel.ID()),
		DeliveryID:  ptrUUID(trackedDelivery.ID()),
	})

	return nil
}
