package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
)

// ConfirmPaymentCommandHandler handles delivery payment confirmation.
type ConfirmPaymentCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   ports.Notifier
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(uowFactory DeliveryUoWFactory, notifier ports.Notifier) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the payment confirmation command.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	if err = trackedDelivery.ConfirmPayment(cmd.ConfirmedBy()); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, trackedDelivery); err != nil {
		return err
	}

	newData, err := snapshotDelivery(trackedDelivery)
	if err != nil {
		return err
	}
	auditEntry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.ConfirmedBy(), cmd.ActorRole(), audit.ActionPaymentConfirm,
		entityTypeDelivery, trackedDelivery.ID(), prevData, newData,
		audit.Links{
			ParcelID:   ptrUUID(trackedDelivery.ParcelID()),
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
		Title:       "Payment confirmed",
		Message:     fmt.Sprintf("Payment of %d received, your delivery is being prepared", trackedDelivery.Fee().TotalFee()),
		ParcelID:    ptrUUID(trackedDelivery.ParcelID()),
		DeliveryID:  ptrUUID(trackedDelivery.ID()),
	})

	return nil
}
