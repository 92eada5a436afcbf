package commands

import (
	"context"
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// RequestDeliveryCommandHandler handles delivery requests.
// The delivery row, the stored-to-requested parcel transition with its history
// entry, the audit entry and any requested default-address save commit in one
// transaction. The fee is computed from the active fee configuration matching
// the parcel weight.
type RequestDeliveryCommandHandler struct {
	uowFactory    DeliveryUoWFactory
	feeCalculator services.FeeCalculator
	notifier      ports.Notifier
}

// NewRequestDeliveryCommandHandler creates a handler for delivery requests.
func NewRequestDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	feeCalculator services.FeeCalculator,
	notifier ports.Notifier,
) RequestDeliveryCommandHandler {
	return RequestDeliveryCommandHandler{
		uowFactory:    uowFactory,
		feeCalculator: feeCalculator,
		notifier:      notifier,
	}
}

// Handle processes the delivery request command.
// Requires the caller to own the parcel, the parcel to be stored and
// unlocked, and no delivery to exist for it yet.
func (h *RequestDeliveryCommandHandler) Handle(ctx context.Context, cmd RequestDeliveryCommand) error {
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

	owner := trackedParcel.Owner()
	if owner == nil || !owner.IsEqual(cmd.RecipientID()) {
		return errs.NewForbiddenError("caller does not own the parcel")
	}

	deliveryRepo := uow.DeliveryRepository()
	if _, err = deliveryRepo.GetByParcel(ctx, trackedParcel.ID()); err == nil {
		return errs.NewConflictError("delivery for parcel")
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	feeConfigs, err := uow.FeeConfigurationRepository().ListActive(ctx)
	if err != nil {
		return err
	}
	fee, err := h.feeCalculator.Calculate(trackedParcel.Weight(), feeConfigs)
	if err != nil {
		return err
	}

	newDelivery, err := delivery.NewDelivery(
		cmd.DeliveryID(), trackedParcel.ID(), cmd.RecipientID(), cmd.Address(), trackedParcel.Weight(), fee,
	)
	if err != nil {
		return err
	}
	if err = deliveryRepo.Add(ctx, newDelivery); err != nil {
		return err
	}

	fromStatus := trackedParcel.Status()
	if err = trackedParcel.TransitionTo(parcel.DeliveryRequested, false); err != nil {
		return err
	}
	if err = parcelRepo.Update(ctx, trackedParcel); err != nil {
		return err
	}

	historyEntry, err := parcel.NewHistoryEntry(
		kernel.NewUUID(), trackedParcel.ID(), &fromStatus, parcel.DeliveryRequested,
		cmd.RecipientID(), "delivery requested",
	)
	if err != nil {
		return err
	}
	if err = uow.HistoryRepository().Append(ctx, historyEntry); err != nil {
		return err
	}

	newData, err := snapshotDelivery(newDelivery)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.RecipientID(), "member", audit.ActionDeliveryRequest,
		entityTypeDelivery, newDelivery.ID(), nil, newData,
		audit.Links{
			ParcelID:   ptrUUID(trackedParcel.ID()),
			DeliveryID: ptrUUID(newDelivery.ID()),
		},
		cmd.Meta(),
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, auditEntry); err != nil {
		return err
	}

	if cmd.SaveAddress() {
		if err = uow.MemberDirectory().SaveDefaultAddress(ctx, cmd.RecipientID(), cmd.Address()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyBestEffort(ctx, h.notifier, ports.Notification{
		RecipientID: cmd.RecipientID(),
		Title:       "Delivery requested",
		Message: fmt.Sprintf("Delivery of parcel %s requested, fee due: %d",
			trackedParcel.TrackingCode(), fee.TotalFee()),
		ParcelID:   ptrUUID(trackedParcel.ID()),
		DeliveryID: ptrUUID(newDelivery.ID()),
	})

	return nil
}
